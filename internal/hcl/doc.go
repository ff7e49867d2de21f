// Package hcl implements config.Loader for HCL pipeline files. A pipeline
// description is a single `pipeline` block plus any number of `stage`
// blocks, possibly spread across several files in a directory:
//
//	pipeline "ingest" {
//	  output  = "sink"
//	  workers = 4
//	}
//
//	stage "source" "src" {}
//
//	stage "round_robin_dispatch" "dispatch" {
//	  inputs = ["src"]
//	}
//
//	stage "map" "sink" {
//	  inputs = ["dispatch"]
//	  arguments {
//	    batch_size = 32
//	  }
//	}
//
// Stage kinds are free-form labels; only the marker kinds interpreted by the
// stage package carry meaning for the analysis.
package hcl
