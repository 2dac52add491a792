package insight

import "github.com/ppiankov/lovewall/internal/model"

// Outcome records how an insight was produced. It is only used for logs and metrics;
// callers always receive a well-formed insight.
type Outcome int

const (
	OutcomeNone         Outcome = iota // Not fetched yet
	OutcomeLive                        // Parsed from the provider response
	OutcomeUnconfigured                // No provider configured, no call made
	OutcomeMalformed                   // Provider answered with an unusable payload
	OutcomeServiceError                // Transport, service, timeout or panic
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLive:
		return "live"
	case OutcomeUnconfigured:
		return "unconfigured"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeServiceError:
		return "service_error"
	default:
		return "none"
	}
}

// Fallback returns the static insight used for a failed outcome
func (o Outcome) Fallback() model.Insight {
	switch o {
	case OutcomeMalformed:
		return FallbackMalformed.Clone()
	case OutcomeServiceError:
		return FallbackServiceError.Clone()
	default:
		return FallbackUnconfigured.Clone()
	}
}

var (
	// FallbackUnconfigured is shown when no provider credential is configured
	FallbackUnconfigured = model.Insight{
		Summary:    "Our community loves the product experience and support.",
		Highlights: []string{"High Quality", "Fast Support", "Great Value"},
	}

	// FallbackMalformed is shown when the provider response cannot be used
	FallbackMalformed = model.Insight{
		Summary:    "Customers love our products!",
		Highlights: []string{"Quality", "Service", "Value"},
	}

	// FallbackServiceError is shown when the provider call fails
	FallbackServiceError = model.Insight{
		Summary:    "Our users consistently highlight quality and quick support.",
		Highlights: []string{"Reliable Quality", "Helpful Support", "Fast Delivery"},
	}
)
