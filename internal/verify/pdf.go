package verify

import (
	"fmt"
	"log"
	"strings"

	"veridoc/internal/container"
	"veridoc/internal/domain"
)

// suspiciousCreators is the denylist of editing tools whose presence in the
// authoring metadata suggests the document was doctored.
var suspiciousCreators = []string{"photoshop", "gimp", "paint", "canva", "pixlr"}

const maxReasonableSizeMB = 10.0

// structuralCheck scores a container-level signal rather than a field.
type structuralCheck struct {
	name     string
	maxScore int
	run      func(sig container.Signals) Result
}

// structuralChecks is the fixed rubric for generic paginated documents.
var structuralChecks = []structuralCheck{
	{
		name:     "pdf_header",
		maxScore: 20,
		run: func(sig container.Signals) Result {
			if sig.HeaderValid {
				return Result{Passed: true, Score: 20, Details: "valid PDF header"}
			}
			return Result{Details: "invalid PDF header"}
		},
	},
	{
		name:     "encryption",
		maxScore: 15,
		run: func(sig container.Signals) Result {
			if !sig.Encrypted {
				return Result{Passed: true, Score: 15, Details: "document is not encrypted"}
			}
			return Result{Details: "document is encrypted (suspicious)"}
		},
	},
	{
		name:     "file_size",
		maxScore: 10,
		run: func(sig container.Signals) Result {
			sizeMB := float64(sig.Size) / (1024 * 1024)
			if sizeMB <= maxReasonableSizeMB {
				return Result{Passed: true, Score: 10, Details: fmt.Sprintf("reasonable file size: %.2f MB", sizeMB)}
			}
			return Result{Details: fmt.Sprintf("unusually large file: %.2f MB", sizeMB)}
		},
	},
	{
		name:     "metadata",
		maxScore: 20,
		run: func(sig container.Signals) Result {
			if !sig.HasMetadata {
				return Result{Score: 10, Details: "no metadata found (partial credit)"}
			}
			creator := strings.ToLower(sig.Creator)
			for _, tool := range suspiciousCreators {
				if strings.Contains(creator, tool) {
					return Result{Details: fmt.Sprintf("suspicious creator software detected: %s", sig.Creator)}
				}
			}
			return Result{Passed: true, Score: 20, Details: fmt.Sprintf("creator software appears legitimate: %s", sig.Creator)}
		},
	},
	{
		name:     "modification",
		maxScore: 20,
		run: func(sig container.Signals) Result {
			if !sig.HasMetadata {
				return Result{Passed: true, Score: 20, Details: "cannot verify (no metadata)"}
			}
			if sig.CreationDate == sig.ModDate || sig.ModDate == container.Unknown {
				return Result{Passed: true, Score: 20, Details: "no modifications detected"}
			}
			return Result{Score: 10, Details: "document was modified after creation (partial credit)"}
		},
	},
}

// ScoreStructural evaluates the container rubric over inspected signals.
func ScoreStructural(sig container.Signals) domain.VerificationReport {
	results := make(map[string]domain.VerificationCheck, len(structuralChecks))
	total, max := 0, 0
	for _, c := range structuralChecks {
		res := runStructuralContained(c, sig)
		if res.Score < 0 {
			res.Score = 0
		}
		if res.Score > c.maxScore {
			res.Score = c.maxScore
		}
		results[c.name] = domain.VerificationCheck{
			Name:     c.name,
			Passed:   res.Passed,
			Score:    res.Score,
			MaxScore: c.maxScore,
			Details:  res.Details,
		}
		total += res.Score
		max += c.maxScore
	}
	return buildReport(domain.DocTypePDF, results, total, max)
}

func runStructuralContained(c structuralCheck, sig container.Signals) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("verify: structural check %s panicked: %v", c.name, r)
			res = Result{Details: fmt.Sprintf("check failed: %v", r)}
		}
	}()
	return c.run(sig)
}
