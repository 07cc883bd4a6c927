// Package importer declares the narrow interface the regridder uses to
// load a collocation match product. File format readers
// (HDF-EOS/HDF4/HDF5/netCDF/CODA) are explicitly out of scope for this
// module; this package exists only so the regridder has something to
// depend on and tests have something to fake.
//
// The signature is grounded on batchatco/go-native-netcdf's Open/
// GetVariable call shape (a named-file open returning a handle with
// named-variable lookups), even though no netCDF backend ships here.
package importer

import harp "github.com/bruno-rino/harp"

// Importer loads a Product from a file.
type Importer interface {
	Import(filename string) (*harp.Product, error)
}

// Func adapts a plain function to Importer.
type Func func(filename string) (*harp.Product, error)

func (f Func) Import(filename string) (*harp.Product, error) { return f(filename) }
