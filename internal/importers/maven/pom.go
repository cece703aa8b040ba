package maven

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// defaultPluginGroup is implied when a plugin omits its groupId.
const defaultPluginGroup = "org.apache.maven.plugins"

// maxInterpolationPasses bounds nested ${...} expansion.
const maxInterpolationPasses = 8

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// pomProject is the subset of the POM model the reader needs.
type pomProject struct {
	XMLName              xml.Name        `xml:"project"`
	Parent               *pomParent      `xml:"parent"`
	GroupID              string          `xml:"groupId"`
	ArtifactID           string          `xml:"artifactId"`
	Version              string          `xml:"version"`
	Packaging            string          `xml:"packaging"`
	Modules              []string        `xml:"modules>module"`
	Properties           xmlNode         `xml:"properties"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
	Build                pomBuild        `xml:"build"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
}

type pomBuild struct {
	Directory           string      `xml:"directory"`
	SourceDirectory     string      `xml:"sourceDirectory"`
	TestSourceDirectory string      `xml:"testSourceDirectory"`
	Resources           []string    `xml:"resources>resource>directory"`
	TestResources       []string    `xml:"testResources>testResource>directory"`
	Plugins             []pomPlugin `xml:"plugins>plugin"`
	PluginManagement    []pomPlugin `xml:"pluginManagement>plugins>plugin"`
}

type pomPlugin struct {
	GroupID       string         `xml:"groupId"`
	ArtifactID    string         `xml:"artifactId"`
	Version       string         `xml:"version"`
	Configuration xmlNode        `xml:"configuration"`
	Executions    []pomExecution `xml:"executions>execution"`
}

type pomExecution struct {
	ID    string   `xml:"id"`
	Goals []string `xml:"goals>goal"`
}

// xmlNode captures free-form elements such as <properties> and plugin
// <configuration>.
type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

// flatten returns the leaf values keyed by their dotted element path
// relative to n. Repeated leaves keep the first value.
func (n xmlNode) flatten() map[string]string {
	out := make(map[string]string)
	var walk func(prefix string, nodes []xmlNode)
	walk = func(prefix string, nodes []xmlNode) {
		for _, child := range nodes {
			key := child.XMLName.Local
			if prefix != "" {
				key = prefix + "." + key
			}
			if len(child.Nodes) == 0 {
				if _, exists := out[key]; !exists {
					out[key] = strings.TrimSpace(child.Content)
				}
				continue
			}
			walk(key, child.Nodes)
		}
	}
	walk("", n.Nodes)
	return out
}

// parsePOM reads and decodes a pom.xml file.
func parsePOM(path string) (*pomProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var project pomProject
	if err := xml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &project, nil
}

// interpolate expands ${key} placeholders from props. Unknown placeholders
// are left in place.
func interpolate(s string, props map[string]string) string {
	s = strings.TrimSpace(s)
	for range maxInterpolationPasses {
		if !strings.Contains(s, "${") {
			return s
		}
		next := placeholder.ReplaceAllStringFunc(s, func(m string) string {
			key := m[2 : len(m)-1]
			if v, ok := props[key]; ok {
				return v
			}
			return m
		})
		if next == s {
			return s
		}
		s = next
	}
	return s
}

// unresolved reports whether s still carries a placeholder.
func unresolved(s string) bool {
	return strings.Contains(s, "${")
}
