/*
Package operation implements the command-level actions of the morefs CLI.

	+-------------+
	|   Runner    |
	| (sync/async)|
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| cp mv rm    |
	| mkdir       |
	+------+------+
	       |
	+------+------+
	|  morefs.FS  |
	+-------------+

🎯 Purpose:
- Chooses between the file and tree variants of each morefs call
- Picks the sequential or parallel replicator
- Cleans up a partial tree copy through morefs.Recover when asked to

🔄 Flow:
1. The CLI builds an Operation from its arguments and Options
2. The runner executes it, optionally on its own goroutine
3. Execute returns a Result with the bytes copied

⚠️ Cleanup:
Only tree copies clean up, and only when the destination did not exist
before the copy started. A destination that was merged into is left alone.

🔍 Example:

	runner := operation.NewRunner(zerolog.Ctx(ctx), false)
	op := operation.NewCopyOperation(operation.Options{FS: fsys, Cleanup: true}, "a", "b", true, false)
	res, err := runner.Run(ctx, op)
*/
package operation
