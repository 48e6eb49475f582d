package config

// PORT is assigned by the hosting platform at runtime.
type API struct {
	Port string `env:"PORT" envDefault:"8080"`
}

func (a API) Bind() string {
	return ":" + a.Port
}
