// Package secret resolves credentials referenced from configuration.
//
// Configuration values may contain ${VAR} environment references, expanded
// strictly, and secret references of the form
//
//	secretref:<provider>:<ref>
//
// either as the whole value or embedded in a larger string such as a DSN:
//
//	postgres://app:secretref:file:db_password@db:5432/site
//
// Two providers ship with the package: "env" reads environment variables
// and "file" reads files such as mounted container secrets.
package secret
