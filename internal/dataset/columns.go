// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dataset

// Canonical column names used by the hooks.
const (
	ColumnProduct         = "MaSanPham"
	ColumnUnitVolume      = "CBM_Unit"
	ColumnWarehouse       = "MaKho"
	ColumnWarehouseName   = "TenKho"
	ColumnMergedWarehouse = "KhoGop"
	ColumnRegion          = "Mien"
	ColumnWarehouseType   = "LoaiKho"
	ColumnProposal        = "MaPhieuDeXuat"
	ColumnType            = "LoaiPhieu"
	ColumnDescription     = "DienGiai"
	ColumnQuantity        = "SoLuong"
	ColumnDate            = "NgayPhieu"

	ColumnTotalVolume = "TotalCBM"
	ColumnMonth       = "Month"
)

var (
	// ProductMergeColumns are brought into outbound rows from the product reference.
	ProductMergeColumns = []string{ColumnProduct, ColumnUnitVolume}
	// WarehouseMergeColumns are brought into outbound rows from the warehouse reference.
	WarehouseMergeColumns = []string{
		ColumnWarehouse,
		ColumnWarehouseName,
		ColumnMergedWarehouse,
		ColumnRegion,
		ColumnWarehouseType,
	}
)
