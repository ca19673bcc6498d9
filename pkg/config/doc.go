/*
Package config loads the defaults shared by every morefs command.

	            +-------------+
	            |   Config    |
	            | (defaults)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Reads .morefs.yaml, .morefs.yml or .morefs.hcl
- Validates exclude patterns and the log level
- Fills in defaults (workers = GOMAXPROCS, log_level = info)
- Turns the result into morefs options

🔄 Flow:
1. Find looks for a config file in a directory
2. The parser registered for its extension decodes it
3. Validate checks values and sets defaults
4. Options feeds workers and excludes into morefs.New

📝 Fields:

	workers            int       size of the parallel copy pool
	parallel           bool      use the parallel replicator for cp -r and mv
	exclude            []string  doublestar patterns skipped by tree copies
	cleanup_on_failure bool      remove a partially copied destination
	log_level          string    zerolog level name
	metrics_file       string    write prometheus metrics here after a run

🔍 Example:

	# .morefs.hcl
	workers            = num_cpu * 2
	exclude            = ["*.tmp", "node_modules"]
	cleanup_on_failure = true

	cfg, err := config.Find(ctx, ".")
	if err != nil {
		return err
	}
	fsys := morefs.New(cfg.Options()...)
*/
package config
