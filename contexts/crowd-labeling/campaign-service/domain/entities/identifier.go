package entities

import (
	"html"
	"strings"

	domainerrors "quorum/contexts/crowd-labeling/campaign-service/domain/errors"
)

// Question tokens ride along with each marketplace question and come back
// attached to the worker's answer. The delimiter never appears in generated
// ids or in any HTML/URL escape sequence, so a token survives transport
// escaping intact. Ids come first; the trailing term text exists only so an
// operator can read the token in the marketplace console and is never parsed
// back.
const tokenDelimiter = "|"

// EncodeQuestionToken builds the opaque token for a (campaign, term) question.
func EncodeQuestionToken(campaignID, termID, termText string) string {
	return strings.Join([]string{campaignID, termID, termText}, tokenDelimiter)
}

// DecodeQuestionToken recovers the campaign and term ids from a returned
// token. The token is HTML-unescaped first so escaping applied by the
// marketplace transport cannot break decoding. A token with fewer than two
// fields, or with empty id fields, fails with ErrMalformedIdentifier; callers
// skip that record and keep processing the rest of the batch.
func DecodeQuestionToken(token string) (campaignID string, termID string, err error) {
	parts := strings.Split(html.UnescapeString(strings.TrimSpace(token)), tokenDelimiter)
	if len(parts) < 2 {
		return "", "", domainerrors.ErrMalformedIdentifier
	}
	campaignID = strings.TrimSpace(parts[0])
	termID = strings.TrimSpace(parts[1])
	if campaignID == "" || termID == "" {
		return "", "", domainerrors.ErrMalformedIdentifier
	}
	return campaignID, termID, nil
}

// EncodeOptionValue builds the selectable-choice value for an option. Like the
// question token, the id leads and the display text is debugging garnish.
func EncodeOptionValue(optionID, optionText string) string {
	return strings.Join([]string{optionID, optionText}, tokenDelimiter)
}

// DecodeOptionValue recovers the option id from a submitted answer value. The
// value may be a bare id or a composite token; only the leading id field is
// trusted.
func DecodeOptionValue(value string) (string, error) {
	parts := strings.Split(html.UnescapeString(strings.TrimSpace(value)), tokenDelimiter)
	optionID := strings.TrimSpace(parts[0])
	if optionID == "" {
		return "", domainerrors.ErrMalformedIdentifier
	}
	return optionID, nil
}
