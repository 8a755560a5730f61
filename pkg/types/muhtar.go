package types

// MuhtarInfo maps a (district, neighborhood) pair to its muhtar. The table is
// replaced wholesale on every directory upload, never merged.
type MuhtarInfo struct {
	IlceAdi        string `db:"ilce_adi" json:"ilceAdi"`
	MahalleAdi     string `db:"mahalle_adi" json:"mahalleAdi"`
	MuhtarAdi      string `db:"muhtar_adi" json:"muhtarAdi"`
	MuhtarTelefonu string `db:"muhtar_telefonu" json:"muhtarTelefonu"`
}
