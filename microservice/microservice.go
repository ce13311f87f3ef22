// Package microservice identifies the downstream services a request can target
// and keeps the table of routes each of them exposes.
package microservice

// Microservice identifies a downstream service.
// Zero value is None: unknown or not tagged.
type Microservice int

const (
	None Microservice = iota
	DrugTrafficking
)

var names = map[Microservice]string{
	None:            "None",
	DrugTrafficking: "DrugTrafficking",
}

var byName = func() map[string]Microservice {
	m := make(map[string]Microservice, len(names))
	for k, v := range names {
		m[v] = k
	}
	return m
}()

func (m Microservice) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return names[None]
}

// Parse resolves a microservice by its exact name.
// Unknown or empty names resolve to None, numeric values ("1") are not accepted.
func Parse(name string) Microservice {
	if m, ok := byName[name]; ok {
		return m
	}
	return None
}

// All returns every known microservice except None
func All() []Microservice {
	return []Microservice{DrugTrafficking}
}
