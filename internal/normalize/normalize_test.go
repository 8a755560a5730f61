package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTopicKnownVariants(t *testing.T) {
	n := Default()

	cases := map[string]string{
		"Diğer":                    "Diğer",
		"diğer":                    "Diğer",
		"Diğer Talepler":           "Diğer",
		"DİĞER TALEPLER":           "Diğer",
		"hat talepleri":            "Hat Talepleri",
		"Hat talepleri":            "Hat Talepleri",
		"  Hat Talepleri  ":        "Hat Talepleri",
		"Servis Sıklığı Talepleri": "Servis Sıklıkları",
		"servis sıklıkları":        "Servis Sıklıkları",
		"durak talepleri":          "Durak Talepleri",
	}
	for input, want := range cases {
		require.Equal(t, want, n.Topic(input), "input %q", input)
	}
}

func TestTopicUnknownPassesThroughTrimmed(t *testing.T) {
	n := Default()
	require.Equal(t, "Otopark Sorunu", n.Topic("  Otopark Sorunu "))
}

func TestTopicIdempotent(t *testing.T) {
	n := Default()
	inputs := []string{"diğer talepler", "Servis Sıklığı Talepleri", "Hat Talepleri", "bilinmeyen konu"}
	for _, input := range inputs {
		once := n.Topic(input)
		require.Equal(t, once, n.Topic(once), "input %q", input)
	}
}

func TestTopicCustomTable(t *testing.T) {
	n := New(map[string]string{"Yol Bakım": "Yol", "yol talepleri": "Yol"})
	require.Equal(t, "Yol", n.Topic("YOL TALEPLERİ"))
	require.Equal(t, "Yol", n.Topic("yol bakım"))
}

func TestDistrictTurkishUpper(t *testing.T) {
	n := Default()
	require.Equal(t, "AKYURT", n.District("akyurt"))
	require.Equal(t, "İZMİR", n.District("izmir"))
	require.Equal(t, "ÇANKAYA", n.District(" çankaya "))
	// dotless ı must fold to I, not stay lower
	require.Equal(t, "KIZILCAHAMAM", n.District("kızılcahamam"))
}

func TestMatchKeyFoldsBothWays(t *testing.T) {
	require.Equal(t, MatchKey("Sincan"), MatchKey("SİNCAN"))
	require.Equal(t, MatchKey(" merkez"), MatchKey("MERKEZ "))
}

func TestDateISOPassthrough(t *testing.T) {
	n := Default()
	require.Equal(t, "2024-12-31", n.Date("2024-12-31"))
	require.Equal(t, "2024-12-31", n.Date("  2024-12-31 "))
}

func TestDateDottedReordered(t *testing.T) {
	n := Default()
	require.Equal(t, "2024-12-31", n.Date("31.12.2024"))
	require.Equal(t, "2023-01-05", n.Date("05.01.2023"))
}

func TestDateSerialNumber(t *testing.T) {
	n := Default()
	// day 0 is 1899-12-30
	require.Equal(t, "2024-01-15", n.Date(45306))
	require.Equal(t, "2024-01-15", n.Date("45306"))
	require.Equal(t, "1899-12-31", n.Date(1))
}

func TestDateNative(t *testing.T) {
	n := Default()
	require.Equal(t, "2024-06-01", n.Date(time.Date(2024, 6, 1, 13, 45, 0, 0, time.UTC)))
}

func TestDateBlankDefaultsToToday(t *testing.T) {
	n := Default()
	n.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	require.Equal(t, "2025-03-10", n.Date(""))
	require.Equal(t, "2025-03-10", n.Date("   "))
	require.Equal(t, "2025-03-10", n.Date(nil))
}

func TestDateIdempotent(t *testing.T) {
	n := Default()
	inputs := []any{"2024-12-31", "31.12.2024", 45306, "45306"}
	for _, input := range inputs {
		once := n.Date(input)
		require.Equal(t, once, n.Date(once), "input %v", input)
	}
}
