// Package price, "45₺" biçiminde saklanan fiyat metnini tek bir değer
// tipinin arkasına alır. Katalogun geri kalanı sadece Value ile çalışır;
// sonek ekleme/çıkarma işi asla handler'lara sızmaz.
package price

import (
	"errors"
	"strings"
)

// Suffix: mağazada saklanan fiyat metninin para birimi soneki.
const Suffix = "₺"

var ErrInvalidAmount = errors.New("geçersiz fiyat")

// Value geçerli bir fiyat tutarı. Sıfır değeri geçersizdir; Parse ile üretilir.
type Value struct {
	amount string
}

// Parse ham fiyat girdisini doğrular. Girdinin sonunda en fazla bir ₺
// soneki olabilir (edit akışı mağazadaki "45₺" metnini olduğu gibi geri
// gönderebilir); rakamlar ve en fazla bir ondalık ayraç (',' veya '.')
// kabul edilir. Negatif, boş veya sayısal olmayan girdi ErrInvalidAmount.
func Parse(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, Suffix)
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, ErrInvalidAmount
	}

	sepSeen := false
	digitSeen := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digitSeen = true
		case r == '.' || r == ',':
			// Ayraç başta, sonda veya ikinci kez olamaz
			if sepSeen || i == 0 || i == len(s)-1 {
				return Value{}, ErrInvalidAmount
			}
			sepSeen = true
		default:
			return Value{}, ErrInvalidAmount
		}
	}
	if !digitSeen {
		return Value{}, ErrInvalidAmount
	}

	return Value{amount: s}, nil
}

// Format kanonik mağaza metnini üretir; sonek her zaman tam bir kez eklenir.
func (v Value) Format() string {
	return v.amount + Suffix
}

// Amount soneksiz ham sayı metni (edit formlarına gösterilen hali).
func (v Value) Amount() string {
	return v.amount
}
