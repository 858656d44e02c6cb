package repository

import "errors"

var (
	// ErrNotFound: verilen id ile kayıt yok.
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrUnavailable: veritabanına ulaşılamadı veya sorgu zaman aşımına uğradı.
	ErrUnavailable = errors.New("veritabanına ulaşılamıyor")
)
