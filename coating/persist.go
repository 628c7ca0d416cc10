package coating

import (
	"github.com/bibin-skaria/coatingtk/manifest"
	"github.com/bibin-skaria/coatingtk/materials"
)

// FromManifest loads the document's materials into lib and then constructs
// the coating from its coating section.
func FromManifest(file *manifest.File, lib *materials.Library, opts ...Option) (*Coating, error) {
	if err := manifest.Validate(file); err != nil {
		return nil, err
	}
	if err := lib.Load(file.Materials); err != nil {
		return nil, err
	}

	section := file.Coating
	opts = append([]Option{WithAOI(section.AOI)}, opts...)
	return New(lib, section.Superstrate, section.Substrate, section.Layers, section.Lambda0, opts...)
}

// Load reads a coating document from path, see FromManifest.
func Load(path string, lib *materials.Library, opts ...Option) (*Coating, error) {
	file, err := manifest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromManifest(file, lib, opts...)
}

// Manifest describes the coating as a document, including the definitions of
// every material it uses.
func (c *Coating) Manifest() (*manifest.File, error) {
	section := manifest.CoatingSection{
		Superstrate: c.superstrate.Name,
		Substrate:   c.substrate.Name,
		Lambda0:     c.Lambda0,
		AOI:         c.AOI,
		Layers:      c.Specs(),
	}

	byName := map[string]*materials.Material{
		c.superstrate.Name: c.superstrate,
		c.substrate.Name:   c.substrate,
	}
	for _, l := range c.layers {
		byName[l.Material().Name] = l.Material()
	}

	names := section.MaterialNames()
	defs := make([]materials.Definition, 0, len(names))
	for _, name := range names {
		def, err := materials.DefinitionOf(byName[name])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return &manifest.File{Materials: defs, Coating: section}, nil
}

// Save writes the coating document to path.
func (c *Coating) Save(path string) error {
	file, err := c.Manifest()
	if err != nil {
		return err
	}
	if err := manifest.WriteFile(path, file); err != nil {
		return err
	}
	c.logger.WithField("path", path).Debug("Saved coating")
	return nil
}
