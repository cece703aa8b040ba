// Package maven reads Maven project descriptors.
//
// The reader parses pom.xml files, follows <modules> declarations
// recursively and produces build-system neutral module descriptors. It
// resolves artifact files from the local repository layout but performs
// no dependency resolution of its own.
//
// # Fault Isolation
//
// Each submodule is read independently. A submodule whose POM is missing
// or malformed is reported in ReadResult.Failures and the walk continues
// with its siblings. Only an unreadable root POM, or a walk that finds no
// modules, is fatal.
//
// # Architectural Position
//
// Maven is a driven adapter implementing driven.DescriptorReader. It has
// no knowledge of the entity graph.
package maven
