/*
	The 'buildorderapi' package holds the error codes and error constructors
	used across buildorder.

	Every error that crosses a package boundary is a serum error,
	so callers can branch on `serum.Code(err)` rather than on message text.
	Constructors document which codes they produce under an "Errors:" heading,
	and functions elsewhere in the repo do the same for the codes they can return.
*/
package buildorderapi
