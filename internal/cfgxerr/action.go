package cfgxerr

type Action int8

const (
	Unknown Action = iota
	Serialize
	Deserialize
	Register
	Load
	Save
)

func (a Action) String() string {
	actions := map[Action]string{
		Unknown:     "unknown",
		Serialize:   "serialize",
		Deserialize: "deserialize",
		Register:    "register",
		Load:        "load",
		Save:        "save",
	}

	if str, ok := actions[a]; ok {
		return str
	}
	return "unknown"
}
