/*
Package status tracks the progress of morefs tree operations.

	            +-------------+
	            |   Tracker   |
	            | (Observer)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Entries  |           | Summary |
	| (by path) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Receives a callback for every replicated entry and every finished tree
- Counts directories, files, other entries and bytes
- Keeps the last known entry for each destination path
- Produces a summary for the end of a run

🔄 Flow:
1. StartOperation starts the clock (optionally with a known total)
2. morefs calls EntryReplicated and TreeReplicated while it works
3. FinishOperation stops the clock and returns the Summary

⚠️ Concurrency:
The parallel replicator calls EntryReplicated from every worker, so all
state sits behind one mutex.

🔍 Example:

	tracker := status.New(zerolog.Ctx(ctx))
	fsys := morefs.New(morefs.WithObserver(tracker))

	tracker.StartOperation(ctx, 0)
	_, err := fsys.CopyTreeParallel(ctx, "a", "b")
	summary := tracker.FinishOperation(ctx)
*/
package status
