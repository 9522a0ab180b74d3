// Package guard classifies proposed shell commands and denies the narrow
// family of recursive, forced removals rooted at a dangerous path
// (rm -rf /, rm -rf ~, rm -rf ., rm -rf $PWD).
//
// The classifier is a syntactic heuristic over raw text, not a shell parser.
// It does not resolve quoting, variable expansion or command substitution.
// Recursive and force flags must share one flag cluster (-rf, -fr, -vRf);
// split groups such as "-r -f" and long flags such as "--recursive --force"
// are not recognized.
package guard

// DenyReason is the fixed reason attached to every denial.
const DenyReason = "blocked by conservative policy: destructive removal target"

// Verdict is the outcome of classifying a command.
type Verdict int

const (
	// Allowed means no dangerous removal was found. It is the zero value,
	// so an unclassified Decision allows.
	Allowed Verdict = iota
	// Denied means the command matched a destructive removal target.
	Denied
)

// String returns the string representation of a Verdict.
func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allow"
	case Denied:
		return "deny"
	default:
		return "unknown"
	}
}

// Decision is the result of classifying one command string.
type Decision struct {
	Verdict Verdict // Allowed or Denied
	Reason  string  // DenyReason when denied, empty otherwise
	Match   string  // the matched "rm <flags> <target>" segment, empty when allowed
	Target  string  // the dangerous path literal that matched
}

// IsDenied reports whether the decision denies the command.
func (d Decision) IsDenied() bool {
	return d.Verdict == Denied
}

// Classifier decides whether a command string may run.
type Classifier interface {
	// Classify inspects a shell command string and returns a Decision.
	// It must be a pure function of command.
	Classify(command string) Decision
}

// Guard is the destructive-removal Classifier. The zero value is ready to use.
type Guard struct{}

// New returns a Guard.
func New() *Guard {
	return &Guard{}
}

// Classify implements Classifier.
func (g *Guard) Classify(command string) Decision {
	return Classify(command)
}

// Classify scans command for a recursive, forced rm aimed at a dangerous
// target and returns the first match as a denial. Commands without a match,
// including the empty string, are allowed.
func Classify(command string) Decision {
	for i := 0; i+len(removeToken) <= len(command); i++ {
		if command[i:i+len(removeToken)] != removeToken || !atTokenBoundary(command, i) {
			continue
		}
		if m, ok := matchRemoval(command, i); ok {
			return Decision{
				Verdict: Denied,
				Reason:  DenyReason,
				Match:   command[i:m.end],
				Target:  m.target,
			}
		}
	}
	return Decision{Verdict: Allowed}
}
