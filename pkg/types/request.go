package types

// Channel is how a request reached the municipality. The UI offers these as a
// dropdown; the type keeps invalid values out of the store as well.
type Channel string

const (
	ChannelSifahi           Channel = "Şifahi Bildirim"
	ChannelHIM              Channel = "HİM"
	ChannelCIMER            Channel = "CİMER"
	ChannelEBYS             Channel = "EBYS"
	ChannelIlceKoordinasyon Channel = "İlçe Koordinasyon Toplantısı"
	ChannelGenelMdToplanti  Channel = "Genel Md.Toplantı"
)

func Channels() []Channel {
	return []Channel{
		ChannelSifahi,
		ChannelHIM,
		ChannelCIMER,
		ChannelEBYS,
		ChannelIlceKoordinasyon,
		ChannelGenelMdToplanti,
	}
}

func (c Channel) Valid() bool {
	for _, known := range Channels() {
		if c == known {
			return true
		}
	}
	return false
}

// Outcome is the evaluation result of a request.
type Outcome string

const (
	OutcomeInceleniyor      Outcome = "İnceleniyor"
	OutcomeOlumlu           Outcome = "Olumlu"
	OutcomeOlumsuz          Outcome = "Olumsuz"
	OutcomeDegerlendirilcek Outcome = "Değerlendirilecek"
)

func Outcomes() []Outcome {
	return []Outcome{
		OutcomeInceleniyor,
		OutcomeOlumlu,
		OutcomeOlumsuz,
		OutcomeDegerlendirilcek,
	}
}

func (o Outcome) Valid() bool {
	for _, known := range Outcomes() {
		if o == known {
			return true
		}
	}
	return false
}

// Request is a single citizen or muhtar request. Dates are stored as
// YYYY-MM-DD strings, the way the rest of the pipeline exchanges them.
type Request struct {
	ID                  string `db:"id" json:"id"`
	TalepNo             string `db:"talep_no" json:"talepNo"`
	TalebiOlusturan     string `db:"talebi_olusturan" json:"talebiOlusturan"`
	IlceAdi             string `db:"ilce_adi" json:"ilceAdi"`
	MahalleAdi          string `db:"mahalle_adi" json:"mahalleAdi"`
	MuhtarAdi           string `db:"muhtar_adi" json:"muhtarAdi"`
	MuhtarTelefonu      string `db:"muhtar_telefonu" json:"muhtarTelefonu"`
	TalebinGelisSekli   string `db:"talebin_gelis_sekli" json:"talebinGelisSekli"`
	TalepTarihi         string `db:"talep_tarihi" json:"talepTarihi"`
	TalepKonusu         string `db:"talep_konusu" json:"talepKonusu"`
	Aciklama            string `db:"aciklama" json:"aciklama"`
	Degerlendirme       string `db:"degerlendirme" json:"degerlendirme"`
	DegerlendirmeSonucu string `db:"degerlendirme_sonucu" json:"degerlendirmeSonucu"`
	GuncellemeTarihi    string `db:"guncelleme_tarihi" json:"guncellemeTarihi"`
	Guncelleyen         string `db:"guncelleyen" json:"guncelleyen"`
}

// RequestInput carries the writable fields of a request, as submitted by the
// request form or produced by the bulk import pipeline. TalepNo is only
// honored on create, for imports that carry their own numbering.
type RequestInput struct {
	TalepNo             string `form:"talep_no" json:"talepNo"`
	TalebiOlusturan     string `form:"talebi_olusturan" json:"talebiOlusturan"`
	IlceAdi             string `form:"ilce_adi" json:"ilceAdi"`
	MahalleAdi          string `form:"mahalle_adi" json:"mahalleAdi"`
	MuhtarAdi           string `form:"muhtar_adi" json:"muhtarAdi"`
	MuhtarTelefonu      string `form:"muhtar_telefonu" json:"muhtarTelefonu"`
	TalebinGelisSekli   string `form:"talebin_gelis_sekli" json:"talebinGelisSekli"`
	TalepTarihi         string `form:"talep_tarihi" json:"talepTarihi"`
	TalepKonusu         string `form:"talep_konusu" json:"talepKonusu"`
	Aciklama            string `form:"aciklama" json:"aciklama"`
	Degerlendirme       string `form:"degerlendirme" json:"degerlendirme"`
	DegerlendirmeSonucu string `form:"degerlendirme_sonucu" json:"degerlendirmeSonucu"`
	Guncelleyen         string `form:"-" json:"guncelleyen"`
}

// Validate rejects values outside the closed channel/outcome sets. Topic and
// dates are not validated here: unknown topics pass through the normalizer
// unchanged and unparseable dates fall back to today.
func (in *RequestInput) Validate() error {
	if in.TalebinGelisSekli != "" && !Channel(in.TalebinGelisSekli).Valid() {
		return &ValidationError{Field: "talebin_gelis_sekli", Message: "geçersiz geliş şekli: " + in.TalebinGelisSekli}
	}
	if in.DegerlendirmeSonucu != "" && !Outcome(in.DegerlendirmeSonucu).Valid() {
		return &ValidationError{Field: "degerlendirme_sonucu", Message: "geçersiz değerlendirme sonucu: " + in.DegerlendirmeSonucu}
	}
	return nil
}

// CountRow is one label/count pair of an aggregate query.
type CountRow struct {
	Label string `db:"label" json:"label"`
	Count int    `db:"count" json:"count"`
}

// RequestStats feeds the dashboard summary cards.
type RequestStats struct {
	Total   int
	ByKonu  []CountRow
	BySonuc []CountRow
	ByIlce  []CountRow
}
