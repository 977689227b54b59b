package buildinfo

const Graffiti = "  ___  ___  _  _  ___  ___  ___  _____ \n / __|/ _ \\| \\| |/ __|| __|/ __||_   _|\n| (__| (_) | .` | (_ || _| \\__ \\  | |  \n \\___|\\___/|_|\\_|\\___||___||___/  |_|  \n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "CONGEST"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
