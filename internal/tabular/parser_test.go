package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mtys/internal/normalize"
)

func TestParseMuhtarCSVCommaDelimited(t *testing.T) {
	csv := "İlçe Adı,Mahalle Adı,Muhtar Adı,Muhtar Telefonu\n" +
		"akyurt,Merkez,Ali Veli,5551112233\n"

	rows, err := ParseMuhtarCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "akyurt", rows[0].IlceAdi)
	require.Equal(t, "Merkez", rows[0].MahalleAdi)
	require.Equal(t, "Ali Veli", rows[0].MuhtarAdi)
	require.Equal(t, "5551112233", rows[0].MuhtarTelefonu)
}

func TestParseMuhtarCSVSniffsSemicolon(t *testing.T) {
	csv := "İlçe Adı;Mahalle Adı;Muhtar Adı;Muhtar Telefonu\n" +
		"Çankaya;Bahçelievler;Ayşe Yılmaz;5550001122\n" +
		"Sincan;Fatih;Mehmet Kaya;5559998877\n"

	rows, err := ParseMuhtarCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Sincan", rows[1].IlceAdi)
}

func TestParseMuhtarCSVSniffsTab(t *testing.T) {
	csv := "İlçe Adı\tMahalle Adı\tMuhtar Adı\tMuhtar Telefonu\n" +
		"Mamak\tEge\tHasan Demir\t5551234567\n"

	rows, err := ParseMuhtarCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Hasan Demir", rows[0].MuhtarAdi)
}

func TestParseMuhtarCSVStripsBOMAndCRLF(t *testing.T) {
	csv := "\ufeffİlçe Adı,Mahalle Adı,Muhtar Adı,Muhtar Telefonu\r\n" +
		"Polatlı,Cumhuriyet,Veli Can,5550000000\r\n"

	rows, err := ParseMuhtarCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Polatlı", rows[0].IlceAdi)
}

func TestParseMuhtarCSVMissingHeaders(t *testing.T) {
	csv := "İlçe Adı,Mahalle Adı\nA,B\n"

	_, err := ParseMuhtarCSV(csv)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Muhtar Adı")
	require.Contains(t, err.Error(), "Muhtar Telefonu")
}

func TestParseMuhtarCSVSkipsBlankLines(t *testing.T) {
	csv := "İlçe Adı,Mahalle Adı,Muhtar Adı,Muhtar Telefonu\n" +
		"\n" +
		"Gölbaşı,Merkez,Ali Veli,5551112233\n" +
		"   \n" +
		"Ayaş,Merkez,Can Tekin,5554445566\n\n"

	rows, err := ParseMuhtarCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestParseMuhtarCSVQuotedFields(t *testing.T) {
	csv := "İlçe Adı,Mahalle Adı,Muhtar Adı,Muhtar Telefonu\n" +
		"Keçiören,\"Ovacık, Yukarı\",\"Ali \"\"Usta\"\" Veli\",\"555\n1112233\"\n"

	rows, err := ParseMuhtarCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Ovacık, Yukarı", rows[0].MahalleAdi)
	require.Equal(t, `Ali "Usta" Veli`, rows[0].MuhtarAdi)
	require.Equal(t, "555\n1112233", rows[0].MuhtarTelefonu)
}

func requestCSVHeader() string {
	return strings.Join([]string{
		"Talebi Oluşturan",
		"İlçe Adı",
		"Mahalle Adı",
		"Muhtar Adı",
		"Muhtar Telefonu",
		"Talebin Geliş Şekli",
		"Talebin Geliş Tarihi",
		"Talep Konusu",
		"Açıklama",
		"Değerlendirme",
		"Değerlendirme Sonucu",
	}, ";")
}

func TestParseRequestCSVSemicolonFixed(t *testing.T) {
	csv := requestCSVHeader() + "\n" +
		"Zabıta;Çankaya;Bahçelievler;Ayşe Yılmaz;5550001122;CİMER;31.12.2024;hat talepleri;Yeni hat;İncelendi;Olumlu\n"

	rows, err := ParseRequestCSV(csv, normalize.Default())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Zabıta", rows[0].TalebiOlusturan)
	require.Equal(t, "2024-12-31", rows[0].TalepTarihi)
	require.Equal(t, "Hat Talepleri", rows[0].TalepKonusu)
	require.Equal(t, "Olumlu", rows[0].DegerlendirmeSonucu)
}

func TestParseRequestCSVEveryRowHasAllFields(t *testing.T) {
	csv := requestCSVHeader() + "\n" +
		"A;İlçe1;Mah1;M1;1;EBYS;2024-01-02;Diğer;x;y;Olumlu\n" +
		"B;İlçe2;Mah2;;;HİM;2024-01-03;Diğer;;;Olumsuz\n" +
		"C;İlçe3;Mah3;M3;3;EBYS;2024-01-04;Diğer;z;w;İnceleniyor\n"

	rows, err := ParseRequestCSV(csv, normalize.Default())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "", rows[1].MuhtarAdi)
	require.Equal(t, "", rows[1].MuhtarTelefonu)
	require.Equal(t, "2024-01-04", rows[2].TalepTarihi)
}

func TestParseRequestCSVMissingHeaderNamesIt(t *testing.T) {
	headers := strings.ReplaceAll(requestCSVHeader(), "Talep Konusu;", "")
	csv := headers + "\nA;B;C;D;E;F;G;H;I;J\n"

	_, err := ParseRequestCSV(csv, normalize.Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Talep Konusu")
	require.NotContains(t, err.Error(), "İlçe Adı,")
}

func TestParseRequestCSVHeaderNewlinesCollapsed(t *testing.T) {
	header := strings.ReplaceAll(requestCSVHeader(), "Talebin Geliş Tarihi", "\"Talebin Geliş\nTarihi\"")
	csv := header + "\n" +
		"A;İlçe;Mah;M;5;EBYS;05.01.2023;Diğer;x;y;Olumlu\n"

	rows, err := ParseRequestCSV(csv, normalize.Default())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "2023-01-05", rows[0].TalepTarihi)
}

func TestParseRequestCSVOptionalGuncelleyen(t *testing.T) {
	csv := requestCSVHeader() + ";Güncelleyen\n" +
		"A;İlçe;Mah;M;5;EBYS;2024-02-02;Diğer;x;y;Olumlu;operator1\n"

	rows, err := ParseRequestCSV(csv, normalize.Default())
	require.NoError(t, err)
	require.Equal(t, "operator1", rows[0].Guncelleyen)
}

func TestParseMuhtarCSVEmptyInput(t *testing.T) {
	rows, err := ParseMuhtarCSV("")
	require.NoError(t, err)
	require.Empty(t, rows)
}
