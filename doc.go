// Package fluxcost provides a concurrent resource-accounting engine.
//
// Processes (identified by a PID) accumulate allocations of billable
// resources such as cpu, memory or storage.  Each allocation is priced by the
// cost policy registered for its kind, and the engine reports the cost and
// penalty of one process or of all of them, either sequentially or fanned
// out over a worker pool:
//
//	srv, _ := fluxcost.New()
//	_ = srv.Start(ctx)
//	defer srv.Shutdown(ctx)
//	_ = srv.AddProcess(ctx, 0)
//	_ = srv.AddAllocation(ctx, 0, 3, resource.CPU, 4)
//	report := srv.ComputeAllConcurrent(ctx)
//
// New resource kinds are added with RegisterPolicy.
package fluxcost
