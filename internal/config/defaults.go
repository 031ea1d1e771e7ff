// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

// Default returns the built-in configuration used when no file is given.
// Every call returns a fresh value.
func Default() *Config {
	return &Config{
		Columns: ColumnsConfig{
			Rename: map[string]string{
				"Số\nTT":                                       "Stt",
				"Loại phiếu":                                   "LoaiPhieu",
				"Ngày phiếu xuất":                              "NgayPhieu",
				"Mã phiếu xuất":                                "MaPhieu",
				"Mã phiếu đề xuất":                             "MaPhieuDeXuat",
				"Ngày hóa đơn":                                 "NgayHoaDon",
				"Số hóa đơn":                                   "SoHoaDon",
				"Mã KH / NCC\n(Customer Code / Vendor Code)":   "MaKhachHang",
				"Tên KH 2 / NCC":                               "TenCuaHang",
				"Tên KH / NCC\n(Customer Name / Vendor Name)":  "TenCongTy",
				"Mã chủ hàng":                                  "MaChuHang",
				"Tên chủ hàng":                                 "TenChuHang",
				"Chi nhánh":                                    "ChiNhanh",
				"Diễn giải\n(Description)":                     "DienGiai",
				"Mã vật tư\n(Goods Code)":                      "MaSanPham",
				"BarCode":                                      "Barcode",
				"Tên vật tư\n(Goods Name)":                     "TenSanPham",
				"Tên tiếng Anh\nEnglish Name)":                 "TenTiengAnh",
				"Đơn vị\n(Unit)":                               "DonVi",
				"Số lượng\n(Quantily)":                         "SoLuong",
				"Giá bán\n(Price)":                             "GiaBan",
				"Tiền hàng\n(Sub Total)":                       "TienHang",
				"Tiền CK\n(Discount)":                          "ChietKhau",
				"Tiền thuế\n(VAT)":                             "Thue",
				"Tồng tiền tt\n(Grand Total)":                  "TongTien",
				"Giá vốn\n(Cost Price)":                        "GiaVon",
				"Tiền vốn\n(Capital)":                          "TienVon",
				"Mã kho\n(Warehouse Code)":                     "MaKho",
				"Nhóm vật tư chính (Goods KeyGroup)":           "Brand",
				"Nhóm vật tư phụ 1 - (Goods SubGroup1)":        "SubBrand1",
				"Nhóm vật tư phụ 2 - (Goods SubGroup2)":        "SubBrand2",
				"Nhóm vật tư phụ 3 - (Goods SubGroup3)":        "SubBrand3",
				"LOT":                                          "LOT",
				"HSD":                                          "HanSuDungTheoLo",
				"Ngày SX (Manufactur Date)":                    "NgaySanXuat",
				"Ngày hết hạn (Expiry Date)":                   "HanSuDung",
				"Số đơn đặt hàng":                              "SoDonDatHang",
				"Ngày đặt hàng":                                "NgayDatHang",
				"PRODUCT CODE":                                 "MaSanPham",
				"PacksPerCase":                                 "PacksPerCase",
				"CBM/Unit":                                     "CBM_Unit",
				"GrossWeightProductg":                          "WeightG",
				" Shelf life\n(Day) ":                          "ShelfLife",
			},
			Numeric:  []string{"SoLuong", "CBM_Unit"},
			Temporal: []string{"NgayPhieu"},
		},
		Datasets: map[string]DatasetConfig{
			DatasetOutbound: {
				Kind:      SourceDirectory,
				Path:      "nebula/outbound",
				HeaderRow: 4,
				KeepColumns: []string{
					"NgayPhieu",
					"MaPhieu",
					"MaPhieuDeXuat",
					"LoaiPhieu",
					"DienGiai",
					"MaSanPham",
					"HanSuDung",
					"Brand",
					"MaKho",
					"SoLuong",
				},
			},
			DatasetProduct: {
				Kind:      SourceFile,
				Path:      "nebula/ref/dmsp.csv",
				HeaderRow: 4,
				KeepColumns: []string{
					"MaSanPham",
					"CBM_Unit",
					"PacksPerCase",
					"WeightG",
					"ShelfLife",
				},
			},
			DatasetWarehouse: {
				Kind:      SourceFile,
				Path:      "nebula/ref/codekho.csv",
				HeaderRow: 0,
				KeepColumns: []string{
					"MaKho",
					"TenKho",
					"KhoGop",
					"Mien",
					"LoaiKho",
				},
			},
		},
	}
}
