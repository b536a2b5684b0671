// Package storage provides the scratch space uploads and normalized audio
// live in for the duration of one request.
//
// Backends register a factory under a provider name; storage/local is the
// only one:
//
//	storage:
//	  provider: "local"
//	  base_path: "/tmp/speechkit"
//	  max_file_size: 104857600
//
// Keys are flat file names, usually NewKey(ext).
package storage
