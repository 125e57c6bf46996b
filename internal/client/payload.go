package client

// buildUpdatePayload rebuilds the job's config into the shape the PUT
// endpoint accepts, applying the requested overrides. The source job
// record is not modified.
func buildUpdatePayload(job Job, opts UpdateOptions) map[string]any {
	mvConfig := copyMap(job["mv_config"])
	// not a valid option in the REST API
	delete(mvConfig, "not_indexed_columns")

	runtimeConfig := copyMap(job["runtime_config"])
	if opts.PerJob {
		runtimeConfig["execution_mode"] = "PER_JOB"
	} else if opts.Session {
		runtimeConfig["execution_mode"] = "SESSION"
	}
	if opts.Streaming {
		runtimeConfig["runtime_mode"] = "STREAMING"
	} else if opts.Batch {
		runtimeConfig["runtime_mode"] = "BATCH"
	}
	runtimeConfig["start_with_savepoint"] = opts.UseSavepoint

	return map[string]any{
		"sql":          job["sql"],
		"mv_endpoints": job["mv_endpoints"],
		"job_config": map[string]any{
			"job_name":          job["name"],
			"autoscaler_config": job["autoscaler_config"],
			"checkpoint_config": job["checkpoint_config"],
			"kubernetes_config": job["kubernetes_config"],
			"mv_config":         mvConfig,
			"runtime_config":    runtimeConfig,
		},
	}
}

// buildStopPayload asks for a savepoint when the flag was given or the
// job itself is configured to start from one.
func buildStopPayload(job Job, savepoint bool) map[string]any {
	if !savepoint {
		if rc, ok := job["runtime_config"].(map[string]any); ok {
			savepoint, _ = rc["start_with_savepoint"].(bool)
		}
	}
	return map[string]any{"savepoint": savepoint}
}

func copyMap(v any) map[string]any {
	src, _ := v.(map[string]any)
	dst := make(map[string]any, len(src))
	for k, val := range src {
		dst[k] = val
	}
	return dst
}
