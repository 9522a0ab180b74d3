package guard

const removeToken = "rm"

// Dangerous path literals. A target must equal one of these exactly;
// "./build" or "/tmp" are not targets.
const (
	TargetRoot    = "/"
	TargetHome    = "~"
	TargetCurrent = "."
	TargetWorkDir = "$PWD"
)

// DangerousTargets returns the enumerated dangerous path literals.
func DangerousTargets() []string {
	return []string{TargetRoot, TargetHome, TargetCurrent, TargetWorkDir}
}

// removal is a successful match starting at an rm token.
type removal struct {
	target string
	end    int // index just past the target
}

// matchRemoval tries to match "rm <ws> <cluster> <ws> <target> <terminator>"
// with the rm token starting at index start.
func matchRemoval(s string, start int) (removal, bool) {
	i, ok := skipSpace(s, start+len(removeToken))
	if !ok {
		return removal{}, false
	}

	end, recursive, force := parseFlagCluster(s, i)
	if !recursive || !force {
		return removal{}, false
	}

	i, ok = skipSpace(s, end)
	if !ok {
		return removal{}, false
	}

	target, end, ok := parseTarget(s, i)
	if !ok {
		return removal{}, false
	}
	return removal{target: target, end: end}, true
}

// parseFlagCluster reads "-" followed by ASCII letters at index i. It returns
// the index just past the cluster and whether the cluster carries the
// recursive (r or R) and force (f) indicators. end == i means no cluster.
func parseFlagCluster(s string, i int) (end int, recursive, force bool) {
	if i >= len(s) || s[i] != '-' {
		return i, false, false
	}
	j := i + 1
	for j < len(s) && isLetter(s[j]) {
		switch s[j] {
		case 'r', 'R':
			recursive = true
		case 'f':
			force = true
		}
		j++
	}
	if j == i+1 {
		return i, false, false
	}
	return j, recursive, force
}

// parseTarget matches one dangerous literal at index i that is immediately
// followed by end-of-string, whitespace or a shell separator.
func parseTarget(s string, i int) (target string, end int, ok bool) {
	for _, t := range DangerousTargets() {
		if len(s)-i < len(t) || s[i:i+len(t)] != t {
			continue
		}
		end = i + len(t)
		if end == len(s) || isSpace(s[end]) || isSeparator(s[end]) {
			return t, end, true
		}
	}
	return "", i, false
}

// skipSpace advances past a run of whitespace starting at i and reports
// whether at least one whitespace character was consumed.
func skipSpace(s string, i int) (int, bool) {
	j := i
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	return j, j > i
}

// atTokenBoundary reports whether index i starts a new token: it is the start
// of the string or follows whitespace or a shell separator.
func atTokenBoundary(s string, i int) bool {
	return i == 0 || isSpace(s[i-1]) || isSeparator(s[i-1])
}

// isSpace matches the POSIX [[:space:]] class.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isSeparator matches the shell list and pipe characters.
func isSeparator(b byte) bool {
	return b == ';' || b == '&' || b == '|'
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
