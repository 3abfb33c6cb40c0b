// Command tweaks lists and edits tweaks declared in HCL manifests.
//
//	tweaks -m app.hcl -s tweaks.yaml list
//	tweaks -m app.hcl -s tweaks.yaml set Network Timeouts "Connect Timeout" 12.5
//	tweaks -m app.hcl -s tweaks.yaml reset -a
//	tweaks -m app.hcl -s tweaks.yaml serve -t s3cr3t -addr :7070
//
// Current values are read from and written to the store file, the same YAML file a program
// opens with blob.OpenFile. serve exposes the same store over HTTP (see package admin).
package main
