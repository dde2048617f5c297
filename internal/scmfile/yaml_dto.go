package scmfile

// YAMLModel is the on-disk shape of a structural causal model.
type YAMLModel struct {
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description"`
	Variables     []YAMLVariable     `yaml:"variables"`
	Interventions []YAMLIntervention `yaml:"interventions"`
}

// YAMLVariable is one structural assignment. Parents maps a parent name to its coefficient.
type YAMLVariable struct {
	Name      string             `yaml:"name"`
	Intercept float64            `yaml:"intercept"`
	Parents   map[string]float64 `yaml:"parents"`
	Noise     *YAMLNoise         `yaml:"noise"`
	Hidden    bool               `yaml:"hidden"`
}

// YAMLNoise selects a distribution with Dist and reads only the parameters it needs.
type YAMLNoise struct {
	Dist  string   `yaml:"dist"`
	Mu    float64  `yaml:"mu"`
	Sigma *float64 `yaml:"sigma"`
	Min   float64  `yaml:"min"`
	Max   float64  `yaml:"max"`
	Rate  float64  `yaml:"rate"`
	P     float64  `yaml:"p"`
	Value float64  `yaml:"value"`
}

// YAMLIntervention is either hard (value) or soft (noise).
type YAMLIntervention struct {
	Target string     `yaml:"target"`
	Value  *float64   `yaml:"value"`
	Noise  *YAMLNoise `yaml:"noise"`
}
