package settings

// BuildArtifact selects which compiled binary is bundled: the project's
// main binary or a named secondary binary target.
type BuildArtifact struct {
	bin string
}

// MainArtifact is the project's main binary
func MainArtifact() BuildArtifact {
	return BuildArtifact{}
}

// BinArtifact is the named binary target
func BinArtifact(name string) BuildArtifact {
	return BuildArtifact{bin: name}
}

// IsMain reports whether this is the main binary
func (a BuildArtifact) IsMain() bool {
	return a.bin == ""
}

// BinName returns the binary target's name, or "" for the main binary
func (a BuildArtifact) BinName() string {
	return a.bin
}

func (a BuildArtifact) String() string {
	if a.IsMain() {
		return "main"
	}
	return "bin:" + a.bin
}
