package app

import (
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/modules/glprint"
	"github.com/specialistvlad/uniformgrid/modules/httpsink"
	"github.com/specialistvlad/uniformgrid/modules/socketio"
)

// coreModules is the definitive list of all sink modules that are compiled
// into the uniformgrid binary.
var coreModules = []registry.Module{
	&glprint.Module{},
	&socketio.Module{},
	&httpsink.Module{},
}
