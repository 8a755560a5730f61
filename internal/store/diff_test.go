package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mtys/pkg/types"
)

func sampleRequest() *types.Request {
	return &types.Request{
		ID:                  "abc123",
		TalepNo:             "MTYS-0042",
		TalebiOlusturan:     "Zabıta",
		IlceAdi:             "ÇANKAYA",
		MahalleAdi:          "BAHÇELİEVLER",
		MuhtarAdi:           "Ayşe Yılmaz",
		MuhtarTelefonu:      "5550001122",
		TalebinGelisSekli:   "CİMER",
		TalepTarihi:         "2024-01-15",
		TalepKonusu:         "Hat Talepleri",
		Aciklama:            "Yeni hat isteniyor",
		Degerlendirme:       "",
		DegerlendirmeSonucu: "İnceleniyor",
		GuncellemeTarihi:    "2024-01-15",
		Guncelleyen:         "operator1",
	}
}

func TestDiffRequestsNoChanges(t *testing.T) {
	old := sampleRequest()
	updated := *old

	require.Empty(t, DiffRequests(old, &updated))
}

func TestDiffRequestsSingleChange(t *testing.T) {
	old := sampleRequest()
	updated := *old
	updated.DegerlendirmeSonucu = "Olumlu"

	changes := DiffRequests(old, &updated)
	require.Len(t, changes, 1)
	require.Equal(t, "degerlendirmeSonucu", changes[0].Field)
	require.Equal(t, "İnceleniyor", changes[0].OldValue)
	require.Equal(t, "Olumlu", changes[0].NewValue)
}

func TestDiffRequestsIgnoresAuditFields(t *testing.T) {
	old := sampleRequest()
	updated := *old
	updated.Guncelleyen = "operator2"
	updated.GuncellemeTarihi = "2024-02-01"

	require.Empty(t, DiffRequests(old, &updated))
}

func TestDiffRequestsOrderFollowsDeclaration(t *testing.T) {
	old := sampleRequest()
	updated := *old
	updated.Aciklama = "Güncellendi"
	updated.IlceAdi = "SİNCAN"

	changes := DiffRequests(old, &updated)
	require.Len(t, changes, 2)
	require.Equal(t, "ilceAdi", changes[0].Field)
	require.Equal(t, "aciklama", changes[1].Field)
}

func TestCreateChangesListsEveryField(t *testing.T) {
	record := sampleRequest()

	changes := CreateChanges(record)
	require.Len(t, changes, 15)
	require.Equal(t, "id", changes[0].Field)
	for _, change := range changes {
		require.Nil(t, change.OldValue)
	}

	byField := map[string]types.FieldChange{}
	for _, change := range changes {
		byField[change.Field] = change
	}
	require.Equal(t, "MTYS-0042", byField["talepNo"].NewValue)
	require.Equal(t, "ÇANKAYA", byField["ilceAdi"].NewValue)
}

func TestDeleteChangesSyntheticEntry(t *testing.T) {
	changes := DeleteChanges("MTYS-0007")
	require.Len(t, changes, 1)
	require.Equal(t, "talepNo", changes[0].Field)
	require.Equal(t, "MTYS-0007", changes[0].OldValue)
	require.Nil(t, changes[0].NewValue)
}

func TestFormatTalepNo(t *testing.T) {
	require.Equal(t, "MTYS-0001", FormatTalepNo(1))
	require.Equal(t, "MTYS-0042", FormatTalepNo(42))
	require.Equal(t, "MTYS-12345", FormatTalepNo(12345))
}
