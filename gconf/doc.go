/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps its configuration in a singleton under the "_c:" + name
key. The value is loaded from the genesis file, validated and written once.
Nothing updates it afterwards, so governance thresholds and income roles are
fixed for the life of the database.
*/
package gconf
