// Package utils provides loose type conversions for values decoded from
// hand-authored JSON (content packs) and startup parameters.
package utils
