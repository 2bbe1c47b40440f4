// Package extract maps reconstructed layout lines onto the fixed field schema
// of a document type. Extraction is a prioritized set of independent
// sub-extractors per schema; a field whose pattern or label marker is not
// found is simply absent from the result, never an error.
package extract

import (
	"log"
	"sort"

	"veridoc/internal/domain"
	"veridoc/internal/layout"
)

// Schema selects the field set to extract.
type Schema string

const (
	SchemaPassport Schema = "passport"
	SchemaCINFront Schema = "cin_front"
	SchemaCINBack  Schema = "cin_back"
)

// Field keys. The CIN front and back schemas use disjoint key sets;
// MergeSides still verifies that instead of assuming it.
const (
	FieldPassportNumber   = "passport_number"
	FieldNationalID       = "national_id"
	FieldDateOfBirth      = "date_of_birth"
	FieldDateOfIssue      = "date_of_issue"
	FieldDateOfExpiry     = "date_of_expiry"
	FieldArabicName       = "full_name_ar"
	FieldFamilyName       = "family_name"
	FieldGivenName        = "given_name"
	FieldGivenNames       = "given_names"
	FieldFatherName       = "father_name"
	FieldNationality      = "nationality"
	FieldPlaceOfBirth     = "place_of_birth"
	FieldGender           = "gender"
	FieldIssuingAuthority = "issuing_authority"
	FieldProfession       = "profession"
	FieldAddress          = "address"
)

// document is the immutable input shared by sub-extractors. Sub-extractors
// never mutate lines, so they cannot affect each other's inputs.
type document struct {
	lines    []layout.Line
	fullText string
}

// subExtractor is one independent extraction unit. First match wins inside a
// unit; units do not depend on one another.
type subExtractor struct {
	name string
	run  func(d *document, out domain.FieldMap)
}

var schemas = map[Schema][]subExtractor{
	SchemaPassport: passportExtractors,
	SchemaCINFront: cinFrontExtractors,
	SchemaCINBack:  cinBackExtractors,
}

// Extract runs every sub-extractor of the schema over the lines and returns
// the fields that were found. A panic inside one sub-extractor is contained
// at its boundary: that field stays absent and the rest still run.
func Extract(lines []layout.Line, schema Schema) domain.FieldMap {
	subs, ok := schemas[schema]
	if !ok {
		return domain.FieldMap{}
	}
	d := &document{lines: lines, fullText: layout.FullText(lines)}
	out := make(domain.FieldMap)
	for _, sub := range subs {
		runContained(sub, d, out)
	}
	return out
}

func runContained(sub subExtractor, d *document, out domain.FieldMap) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract: sub-extractor %s panicked: %v", sub.name, r)
		}
	}()
	sub.run(d, out)
}

// MergeSides combines front and back CIN fields. The schemas keep the key
// sets disjoint; if a key nevertheless collides, the front value wins and the
// key is reported so the caller can flag it.
func MergeSides(front, back domain.FieldMap) (domain.FieldMap, []string) {
	merged := make(domain.FieldMap, len(front)+len(back))
	for k, v := range front {
		merged[k] = v
	}

	keys := make([]string, 0, len(back))
	for k := range back {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var conflicts []string
	for _, k := range keys {
		if _, exists := merged[k]; exists {
			conflicts = append(conflicts, k)
			continue
		}
		merged[k] = back[k]
	}
	return merged, conflicts
}
