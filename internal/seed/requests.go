package seed

import (
	"context"
	"fmt"

	"mtys/internal/store"
	"mtys/pkg/types"
)

var seedRequests = []types.RequestInput{
	{
		TalebiOlusturan:     "Ahmet Yılmaz",
		IlceAdi:             "Çankaya",
		MahalleAdi:          "Kızılay",
		MuhtarAdi:           "Ahmet Yılmaz",
		MuhtarTelefonu:      "0532 111 22 33",
		TalebinGelisSekli:   string(types.ChannelSifahi),
		TalepTarihi:         "2026-01-12",
		TalepKonusu:         "Durak Talepleri",
		Aciklama:            "Kızılay meydanına yeni otobüs durağı talebi",
		DegerlendirmeSonucu: string(types.OutcomeInceleniyor),
	},
	{
		TalebiOlusturan:     "Mehmet Kaya",
		IlceAdi:             "Keçiören",
		MahalleAdi:          "Etlik",
		MuhtarAdi:           "Mehmet Kaya",
		MuhtarTelefonu:      "0534 333 44 55",
		TalebinGelisSekli:   string(types.ChannelCIMER),
		TalepTarihi:         "2026-02-03",
		TalepKonusu:         "Hat Talepleri",
		Aciklama:            "Etlik ile Ulus arasına direkt hat talebi",
		Degerlendirme:       "Güzergah etüdü yapılacak",
		DegerlendirmeSonucu: string(types.OutcomeDegerlendirilcek),
	},
	{
		TalebiOlusturan:     "Ayşe Çelik",
		IlceAdi:             "Sincan",
		MahalleAdi:          "İstasyon",
		MuhtarAdi:           "Ayşe Çelik",
		MuhtarTelefonu:      "0535 444 55 66",
		TalebinGelisSekli:   string(types.ChannelHIM),
		TalepTarihi:         "2026-02-18",
		TalepKonusu:         "Servis Sıklıkları",
		Aciklama:            "Sabah saatlerinde sefer sıklığının artırılması",
		Degerlendirme:       "Sabah 06:00-09:00 arası ek sefer planlandı",
		DegerlendirmeSonucu: string(types.OutcomeOlumlu),
	},
}

// SeedRequests inserts the sample requests into an empty table. Each insert
// goes through the repository so talep numbers and audit logs are produced
// the same way real records get them.
func SeedRequests(ctx context.Context, requestRepo *store.RequestRepository) error {
	existing, err := requestRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	if len(existing) > 0 {
		fmt.Printf("Requests present (%d rows), skipping\n", len(existing))
		return nil
	}

	for i := range seedRequests {
		input := seedRequests[i]
		input.Guncelleyen = "seed"

		if _, err := requestRepo.Create(ctx, &input); err != nil {
			return fmt.Errorf("failed to seed request %d: %w", i+1, err)
		}
	}

	fmt.Printf("Requests seeded: %d rows\n", len(seedRequests))
	return nil
}
