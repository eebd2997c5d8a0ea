// Package persistence loads and saves the package database file.
//
// The document is one mapping with a single key, packages_installed, whose
// value is an ordered list of records carrying pkgname, version and
// short_desc. The same shape is written as YAML, JSON or an XML property
// list depending on the file extension or an explicit save.WithFormat.
package persistence

import (
	"fmt"

	"github.com/agentstation/pkgdb/pkg/constants"
	"github.com/agentstation/pkgdb/pkg/errors"
	"github.com/agentstation/pkgdb/pkg/packages"
)

// document is the encoded form of a store.
type document struct {
	Packages []packages.Package `json:"packages_installed" yaml:"packages_installed" plist:"packages_installed"`
}

func newDocument(store *packages.Packages) document {
	if store == nil {
		return document{Packages: []packages.Package{}}
	}
	return document{Packages: store.List()}
}

// fromTree converts a decoded generic tree into a store, rejecting
// anything that does not have the document shape.
func fromTree(tree any, format, path string) (*packages.Packages, error) {
	corrupt := func(msg string, args ...any) error {
		return errors.NewParseError(format, path, fmt.Sprintf(msg, args...), nil)
	}

	root, ok := tree.(map[string]any)
	if !ok {
		return nil, corrupt("root is not a mapping")
	}

	value, ok := root[constants.PackagesKey]
	if !ok {
		return nil, corrupt("missing %s", constants.PackagesKey)
	}

	items, ok := value.([]any)
	if !ok {
		return nil, corrupt("%s is not a list", constants.PackagesKey)
	}

	store := packages.New(packages.WithCapacity(len(items)))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, corrupt("record %d is not a mapping", i)
		}

		var pkg packages.Package
		for _, field := range []struct {
			key string
			dst *string
		}{
			{constants.NameKey, &pkg.Name},
			{constants.VersionKey, &pkg.Version},
			{constants.DescriptionKey, &pkg.Description},
		} {
			s, ok := fields[field.key].(string)
			if !ok {
				return nil, corrupt("record %d: %s must be a string", i, field.key)
			}
			*field.dst = s
		}

		if err := store.Add(pkg); err != nil {
			switch {
			case errors.IsAlreadyExists(err):
				return nil, corrupt("record %d: duplicate %s %q", i, constants.NameKey, pkg.Name)
			default:
				return nil, errors.NewParseError(format, path, fmt.Sprintf("record %d: %v", i, err), err)
			}
		}
	}

	return store, nil
}
