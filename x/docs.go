/*
Package x contains the extensions of the engine

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct the application.
Each sub-package owns one concern: share registry, income currency,
income distribution, governance, signatures and the shared decorators.
*/
package x

// Validater is any struct that can be validated.
// Not the same as a Validator, which votes on the blocks.
type Validater interface {
	Validate() error
}
