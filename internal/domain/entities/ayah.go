// Package entities contains domain entities used across the application.
package entities

// Ayah is a single verse as returned by the content API.
// Only Number and Text are needed to build questions; the rest is carried for display.
type Ayah struct {
	Number        int    `json:"number"`        // global verse number (1..6236), unique within any scope
	Text          string `json:"text"`          // Uthmani text of the verse
	NumberInSurah int    `json:"numberInSurah"` // verse number inside its surah
	Page          int    `json:"page"`          // mushaf page (1..604)
	Juz           int    `json:"juz"`           // thirtieth-part (1..30)
}
