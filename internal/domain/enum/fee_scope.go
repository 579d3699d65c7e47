package enum

// FeeScope identifies the cohort shape of a catalog entry: school fees are
// defined per class, feeding fees apply to every active student.
type FeeScope string

const (
	FeeScopeClass  FeeScope = "class"
	FeeScopeGlobal FeeScope = "global"
)

func (s FeeScope) Valid() bool {
	return s == FeeScopeClass || s == FeeScopeGlobal
}
