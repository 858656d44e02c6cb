package catalog

// Menü kategorileri. Etiketler mağazada veri olarak saklanır ve mobil
// tarafın filtre çipleriyle birebir aynıdır.
const (
	CategoryAll       = "Tümü" // sentinel: filtre yok
	CategoryBeverages = "İçecekler"
	CategoryFood      = "Yiyecekler"
	CategoryDesserts  = "Pastalar"
)

// Categories UI filtre çipleri için sıralı liste (sentinel dahil).
var Categories = []string{CategoryAll, CategoryBeverages, CategoryFood, CategoryDesserts}

// ValidCategory yazma yolunda kullanılır; okuma yolunda bilinmeyen
// kategoriler reddedilmez (eski kayıtlar bozulmasın).
func ValidCategory(c string) bool {
	switch c {
	case CategoryBeverages, CategoryFood, CategoryDesserts:
		return true
	}
	return false
}
