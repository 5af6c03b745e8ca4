package gateway

// Description documents a backend's configuration options so that
// configuration forms can be generated from it
type Description struct {
	Caption string         `json:"caption"`
	Options []OptionDetail `json:"options"`
}

// OptionDetail describes one configuration option
type OptionDetail struct {
	Name     string `json:"name"`
	Caption  string `json:"caption"`
	Required bool   `json:"required"`
	Default  string `json:"default,omitempty"`
}

// Option returns the named option
func (d Description) Option(name string) (OptionDetail, bool) {
	for _, o := range d.Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionDetail{}, false
}
