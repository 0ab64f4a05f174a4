/*
	The 'fxfile' package reads build targets out of starlark "fx files".

	A target is any top-level def whose first parameter is named "fx".
	What it depends on is declared through the default value of a "depends_on" parameter:

		def compile(fx, depends_on=["generate", "vendor"]):
			pass

		def generate(fx):
			pass

	Only the syntax is inspected.  The file is never evaluated,
	which keeps reading a dependency graph free of any side effects the targets might have.
*/
package fxfile
