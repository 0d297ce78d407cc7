package momentum

// State is a named momentum band shown to the learner.
type State struct {
	Name string
	Icon string
	Min  int
	Max  int
}

// States is the ordered momentum band table, lowest first. Bands cover 0-100
// without gaps.
var States = []State{
	{Name: "Cold", Icon: "❄", Min: 0, Max: 25},
	{Name: "Warming", Icon: "☀", Min: 26, Max: 50},
	{Name: "Hot", Icon: "🔥", Min: 51, Max: 75},
	{Name: "On Fire", Icon: "⚡", Min: 76, Max: 100},
}

// StateFor returns the band containing score. Scores outside 0-100 map to the
// nearest band.
func StateFor(score int) State {
	if score <= States[0].Min {
		return States[0]
	}
	for _, s := range States {
		if score >= s.Min && score <= s.Max {
			return s
		}
	}
	return States[len(States)-1]
}
