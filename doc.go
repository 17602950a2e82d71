// Package disksearch finds files by name under a directory tree and copies
// them into a destination directory using a three-stage concurrent
// pipeline.
//
// # Pipeline
//
// [Run] starts every worker before waiting for any of them:
//
//	enumerator ──► directory queue ──► N matchers ──► results queue ──► M copiers
//
//   - The enumerator walks the root depth-first and enqueues every
//     subdirectory at every depth.
//   - Each matcher takes one directory at a time, lists its immediate
//     regular files and enqueues those accepted by [NameMatcher].
//   - Each copier takes one file at a time and copies it into the
//     destination under the same base name, replacing existing files.
//
// Both queues are [github.com/baxromumarov/disksearch/queue.Bounded]
// instances. A worker that writes into a queue is registered as one of its
// producers before its goroutine starts and unregisters when it returns,
// so a queue closes exactly when every upstream worker is done and every
// item has been taken. No sentinel values or polling are involved.
//
// # Errors
//
// Invalid configuration is reported by [Config.Validate] and by Run before
// any worker starts. Errors from running workers are wrapped in
// [*WorkerError]; use [IsWorkerError], [AllWorkerErrors], [WorkerOf] and
// [FailedCopies] to inspect them. A failed copy is a [*CopyError], handled according to
// [Config.OnCopyError]:
//
//   - [StopWorker] (default): the failing copier stops, the others continue.
//   - [SkipFile]: the copier records the failure and continues.
//   - [AbortRun]: all workers drain their input without further work. An
//     unreadable directory aborts the run as well.
//
// Panics in workers are captured with their stack as [*PanicError] and
// re-raised from Run once every worker has exited, unless
// [WithPanicAsError] is set.
//
// # Filesystem
//
// Workers touch the filesystem only through [FS]. [OSFS] is the default;
// [WithFS] substitutes another implementation.
package disksearch
