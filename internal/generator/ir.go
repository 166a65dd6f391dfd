package generator

// Names of the runtime helpers defined by the prelude. Emitted expressions and
// the prelude template both read them from here.
const (
	helperBool   = "_bool"
	helperAnd    = "_and"
	helperOr     = "_or"
	helperNot    = "_not"
	helperInt    = "_int"
	helperArgs   = "_args"
	helperUnpack = "_unpack"
)

const (
	DefaultHostTable = "pico"
	DefaultVarPrefix = "__pico__"
)

// Config holds generation settings. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	HostTable    string // table holding every user function, exposed to the host
	VarPrefix    string // prepended to every variable name
	ShortCircuit bool   // render and/or with native short-circuit operators instead of _and/_or
	NullLiteral  bool   // accept the null literal of optional references
}

// DefaultConfig returns the settings matching the stock pico runtime.
func DefaultConfig() Config {
	return Config{
		HostTable:   DefaultHostTable,
		VarPrefix:   DefaultVarPrefix,
		NullLiteral: true,
	}
}

// preludeModel is the root template model for the prelude.
type preludeModel struct {
	Host   string
	Bool   string
	And    string
	Or     string
	Not    string
	Int    string
	Args   string
	Unpack string
}

func newPreludeModel(cfg Config) preludeModel {
	return preludeModel{
		Host:   cfg.HostTable,
		Bool:   helperBool,
		And:    helperAnd,
		Or:     helperOr,
		Not:    helperNot,
		Int:    helperInt,
		Args:   helperArgs,
		Unpack: helperUnpack,
	}
}

// runtimeNames lists every global the prelude defines. Mangled variables must
// never collide with them.
func runtimeNames() []string {
	return []string{helperBool, helperAnd, helperOr, helperNot, helperInt, helperArgs}
}
