package domain

// LanguageCandidate is one entry of a ranked language detection result:
// an ISO-639-1-like code with a confidence score in [0,1].
type LanguageCandidate struct {
	Code  string
	Score float64
}

// LanguagePreference is the single persisted language record for a
// conversation. Later writes overwrite earlier ones.
type LanguagePreference struct {
	ContactID    string
	LanguageCode string
	UpdatedAt    string
	TTL          int64
}
