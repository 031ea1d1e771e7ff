// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testProducts = "Danh mục sản phẩm\nXuất ngày,01/03/2024\n,\nGhi chú,\n" +
		"PRODUCT CODE,CBM/Unit\n" +
		"P1,2.0\n"

	testWarehouses = "MaKho,TenKho,KhoGop,Mien,LoaiKho\n" +
		"W1,Warehouse One,W,Bắc,Kho thường\n"

	testOutbound = "BÁO CÁO XUẤT KHO\nTừ ngày,01/02/2024\nĐến ngày,29/02/2024\n,\n" +
		"Mã phiếu đề xuất,\"Mã kho\n(Warehouse Code)\",Loại phiếu,\"Diễn giải\n(Description)\",\"Mã vật tư\n(Goods Code)\",\"Số lượng\n(Quantily)\",Ngày phiếu xuất\n" +
		"R1,W1,Xuất bán,Đơn hàng,P1,10,01/02/2024\n" +
		"R2,KK01,Xuất bán,Kiểm kê,P1,1,03/02/2024\n"
)

// setupTestData writes a data directory readable with the built-in configuration and
// returns its path.
func setupTestData(tb testing.TB) string {
	tb.Helper()

	dir := tb.TempDir()
	files := map[string]string{
		filepath.Join(dir, "nebula", "ref", "dmsp.csv"):          testProducts,
		filepath.Join(dir, "nebula", "ref", "codekho.csv"):       testWarehouses,
		filepath.Join(dir, "nebula", "outbound", "2024-02.csv"):  testOutbound,
		filepath.Join(dir, "nebula", "outbound", "ignored.xlsx"): "not a csv file",
	}

	for path, content := range files {
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	}

	return dir
}
