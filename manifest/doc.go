// Package manifest reads tweak declarations from HCL files.
//
// A manifest nests tweaks in categories and collections:
//
//	category "Network" {
//	  collection "Timeouts" {
//	    tweak "Connect Timeout" {
//	      type    = "float"
//	      default = 5
//	      min     = 1
//	      max     = 30
//	    }
//	  }
//	  collection "Endpoints" {
//	    tweak "Server" {
//	      default = "prod"
//	      mapping = {
//	        prod    = "https://api.example.com"
//	        staging = "https://staging.example.com"
//	      }
//	    }
//	  }
//	}
//
// The type of a tweak is inferred from its default. HCL numbers carry no int/float
// distinction, so whole numbers infer as int; the optional type attribute ("bool", "int",
// "uint", "float", "string") forces it. Bounds are converted to the same type.
//
// Load returns scan.Records; Declare appends them to the process-wide declaration table so
// the next scan materializes them.
package manifest
