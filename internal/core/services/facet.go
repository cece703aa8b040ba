package services

import (
	"strings"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// Compiler plugins recognised for facet detection.
const (
	kotlinPluginGroup    = "org.jetbrains.kotlin"
	kotlinPluginArtifact = "kotlin-maven-plugin"

	compilerPluginGroup    = "org.apache.maven.plugins"
	compilerPluginArtifact = "maven-compiler-plugin"
)

// platformKeywords maps execution goal fragments to platforms.
// The first matching keyword wins; goals matching none are JVM.
var platformKeywords = []struct {
	keyword  string
	platform domain.Platform
}{
	{"js", domain.PlatformJS},
	{"metadata", domain.PlatformCommon},
	{"common", domain.PlatformCommon},
}

// detectPlatform scans execution goals against the keyword table.
func detectPlatform(goals []string) domain.Platform {
	for _, goal := range goals {
		goal = strings.ToLower(goal)
		for _, kw := range platformKeywords {
			if strings.Contains(goal, kw.keyword) {
				return kw.platform
			}
		}
	}
	return domain.PlatformJVM
}

// facet synthesises a compiler facet when the module declares the Kotlin
// compiler plugin. Returns nil otherwise.
func (b *GraphBuilder) facet(d *domain.ModuleDescriptor) *domain.Facet {
	plugin, ok := d.Plugin(kotlinPluginGroup, kotlinPluginArtifact)
	if !ok {
		return nil
	}

	f := &domain.Facet{Platform: detectPlatform(plugin.Goals)}
	f.APIVersion, _ = ResolveChain(apiVersionChain(d, plugin, b.opts.Compiler)...)
	f.LanguageVersion, _ = ResolveChain(languageVersionChain(d, plugin, b.opts.Compiler)...)
	if f.Platform == domain.PlatformJVM {
		f.TargetVersion, _ = ResolveChain(targetVersionChain(d, plugin, b.opts.Compiler)...)
	}
	return f
}

func apiVersionChain(d *domain.ModuleDescriptor, plugin *domain.PluginDescriptor, defaults domain.CompilerDefaults) []Lookup {
	return []Lookup{
		MapLookup(plugin.Configuration, "apiVersion"),
		MapLookup(d.Properties, "kotlin.compiler.apiVersion"),
		Constant(defaults.APIVersion),
	}
}

func languageVersionChain(
	d *domain.ModuleDescriptor,
	plugin *domain.PluginDescriptor,
	defaults domain.CompilerDefaults,
) []Lookup {
	return []Lookup{
		MapLookup(plugin.Configuration, "languageVersion"),
		MapLookup(d.Properties, "kotlin.compiler.languageVersion"),
		Constant(defaults.LanguageVersion),
	}
}

// targetVersionChain falls back to the Java compiler plugin before the
// baseline, since the Kotlin and Java targets of a module usually agree.
func targetVersionChain(
	d *domain.ModuleDescriptor,
	plugin *domain.PluginDescriptor,
	defaults domain.CompilerDefaults,
) []Lookup {
	chain := []Lookup{
		MapLookup(plugin.Configuration, "jvmTarget"),
		MapLookup(d.Properties, "kotlin.compiler.jvmTarget"),
	}
	if companion, ok := d.Plugin(compilerPluginGroup, compilerPluginArtifact); ok {
		chain = append(chain,
			MapLookup(companion.Configuration, "release"),
			MapLookup(companion.Configuration, "target"),
		)
	}
	return append(chain,
		MapLookup(d.Properties, "maven.compiler.release"),
		MapLookup(d.Properties, "maven.compiler.target"),
		Constant(defaults.TargetVersion),
	)
}
