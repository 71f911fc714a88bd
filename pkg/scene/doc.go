// Package scene is a headless map host for the spider engine.
//
// It implements spider.Surface, spider.Marker, and spider.Leg over a
// Web Mercator viewport with no rendering toolkit behind it. Listeners fire
// synchronously, like a browser map widget's would, and deferred work is
// queued on a schedule.Manual clock so tests and tools decide when time
// passes.
//
// A [File] describes a viewport, a marker set, engine settings, and an
// optional script of user actions. [Build] turns it into a live [Scene]:
//
//	f, err := scene.Load("testdata/paris.toml")
//	if err != nil {
//	    return err
//	}
//	sc, err := scene.Build(f)
//	if err != nil {
//	    return err
//	}
//	if err := sc.Run(); err != nil {
//	    return err
//	}
//	fr := sc.Frame()
//
// Frames are plain data snapshots in pixel space, consumed by pkg/render.
package scene
