// Package importers holds the build-system specific import strategies.
//
// Each subpackage either implements driven.DescriptorReader (and is
// adapted into a strategy by services.DescriptorImporter) or implements
// driven.Importer directly:
//
//   - maven: Multi-module pom.xml projects
//   - jsonworkspace: Folders carrying a canonical workspace.json
package importers
