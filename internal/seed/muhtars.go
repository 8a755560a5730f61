package seed

import (
	"context"
	"fmt"

	"mtys/internal/store"
	"mtys/pkg/types"
)

var seedMuhtars = []types.MuhtarInfo{
	{IlceAdi: "ÇANKAYA", MahalleAdi: "Kızılay", MuhtarAdi: "Ahmet Yılmaz", MuhtarTelefonu: "0532 111 22 33"},
	{IlceAdi: "ÇANKAYA", MahalleAdi: "Bahçelievler", MuhtarAdi: "Fatma Demir", MuhtarTelefonu: "0533 222 33 44"},
	{IlceAdi: "KEÇİÖREN", MahalleAdi: "Etlik", MuhtarAdi: "Mehmet Kaya", MuhtarTelefonu: "0534 333 44 55"},
	{IlceAdi: "SİNCAN", MahalleAdi: "İstasyon", MuhtarAdi: "Ayşe Çelik", MuhtarTelefonu: "0535 444 55 66"},
	{IlceAdi: "MAMAK", MahalleAdi: "Abidinpaşa", MuhtarAdi: "Hasan Şahin", MuhtarTelefonu: "0536 555 66 77"},
	{IlceAdi: "YENİMAHALLE", MahalleAdi: "Batıkent", MuhtarAdi: "Zeynep Arslan", MuhtarTelefonu: "0537 666 77 88"},
	{IlceAdi: "AKYURT", MahalleAdi: "Merkez", MuhtarAdi: "Ali Veli", MuhtarTelefonu: "0538 777 88 99"},
	{IlceAdi: "GÖLBAŞI", MahalleAdi: "Bahçelievler", MuhtarAdi: "Emine Koç", MuhtarTelefonu: "0539 888 99 00"},
}

// SeedMuhtars loads the sample directory unless one is already present.
// Replace is wholesale, so a non-empty directory is left alone.
func SeedMuhtars(ctx context.Context, muhtarRepo *store.MuhtarRepository) error {
	existing, err := muhtarRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list muhtar data: %w", err)
	}

	if len(existing) > 0 {
		fmt.Printf("Muhtar data present (%d rows), skipping\n", len(existing))
		return nil
	}

	if err := muhtarRepo.Replace(ctx, seedMuhtars); err != nil {
		return fmt.Errorf("failed to seed muhtar data: %w", err)
	}

	fmt.Printf("Muhtar data seeded: %d rows\n", len(seedMuhtars))
	return nil
}
