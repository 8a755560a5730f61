package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mtys/internal/normalize"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseMuhtarExcel(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"İlçe Adı", "Mahalle Adı", "Muhtar Adı", "Muhtar Telefonu"},
		{"akyurt", "Merkez", "Ali Veli", "5551112233"},
		{"Çankaya", "Bahçelievler", "Ayşe Yılmaz", "5550001122"},
	})

	rows, err := ParseMuhtarExcel(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "akyurt", rows[0].IlceAdi)
	require.Equal(t, "Ayşe Yılmaz", rows[1].MuhtarAdi)
}

func TestParseMuhtarExcelMissingHeaders(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"İlçe Adı", "Mahalle Adı"},
		{"A", "B"},
	})

	_, err := ParseMuhtarExcel(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Muhtar Adı")
}

func TestParseRequestExcelDateSerial(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Talebi Oluşturan", "İlçe Adı", "Mahalle Adı", "Muhtar Adı", "Muhtar Telefonu",
			"Talebin Geliş Şekli", "Talebin Geliş Tarihi", "Talep Konusu", "Açıklama",
			"Değerlendirme", "Değerlendirme Sonucu"},
		{"Zabıta", "Çankaya", "Bahçelievler", "Ayşe Yılmaz", "5550001122",
			"CİMER", 45306, "servis sıklığı talepleri", "Ek sefer", "", "İnceleniyor"},
	})

	rows, err := ParseRequestExcel(data, normalize.Default())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "2024-01-15", rows[0].TalepTarihi)
	require.Equal(t, "Servis Sıklıkları", rows[0].TalepKonusu)
}

func TestParseRequestExcelShortRowsPadded(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Talebi Oluşturan", "İlçe Adı", "Mahalle Adı", "Muhtar Adı", "Muhtar Telefonu",
			"Talebin Geliş Şekli", "Talebin Geliş Tarihi", "Talep Konusu", "Açıklama",
			"Değerlendirme", "Değerlendirme Sonucu"},
		{"A", "İlçe", "Mah", "", "", "EBYS", "2024-03-01", "Diğer"},
	})

	rows, err := ParseRequestExcel(data, normalize.Default())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "", rows[0].DegerlendirmeSonucu)
	require.Equal(t, "2024-03-01", rows[0].TalepTarihi)
}
