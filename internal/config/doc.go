// Package config defines the format-agnostic pipeline description model and
// the Loader interface for producing it. Concrete loaders (such as the HCL
// one) live in separate packages; everything downstream of config knows
// nothing about the on-disk format.
package config
