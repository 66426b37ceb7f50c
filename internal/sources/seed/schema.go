package seed

// Entry is one listing in a seed YAML file. Missing fields are filled by
// domain.Normalize.
type Entry struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Currency    string  `yaml:"currency"`
	Category    string  `yaml:"category"`
	Location    string  `yaml:"location"`
	Contact     string  `yaml:"contact"`
}

// File is the root structure of a seed YAML file.
type File struct {
	Listings []Entry `yaml:"listings"`
}
