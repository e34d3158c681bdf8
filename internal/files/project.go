package files

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/filebridge/internal/types"
)

// Marker files that identify a project shape.
const (
	packageJSONName = "package.json"
	indexHTMLName   = "index.html"
)

// Setup commands for recognized project shapes.
const (
	npmInstallCommand  = "npm install"
	staticServeCommand = "npx --yes serve"
)

// preferredScripts are the package.json scripts tried in priority order.
var preferredScripts = []string{"dev", "start", "preview"}

// inspectScriptsMessage is offered when package.json has none of the preferred scripts.
const inspectScriptsMessage = "Would you like me to inspect package.json to determine the available scripts for running this project?"

// packageJSONSchema constrains the part of package.json that detection reads.
const packageJSONSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "scripts": { "type": "object" }
  }
}`

var packageJSONSchemaLoader = gojsonschema.NewStringLoader(packageJSONSchema)

// packageManifest is the subset of package.json used for detection.
type packageManifest struct {
	Scripts map[string]any `json:"scripts"`
}

// DetectProjectType inspects files for marker files and derives the setup command
// and a follow-up message. An unrecognized shape yields the zero ProjectType.
func DetectProjectType(files []File) types.ProjectType {
	if pkg := findBySuffix(files, packageJSONName); pkg != nil {
		scripts := readScripts(pkg)
		for _, cmd := range preferredScripts {
			if script, ok := scripts[cmd].(string); ok && script != "" {
				return types.ProjectType{
					Type:         types.ProjectTypeNode,
					SetupCommand: npmInstallCommand + " && npm run " + cmd,
					FollowupMessage: fmt.Sprintf(
						"Found \"%s\" script in package.json. Running \"npm run %s\" after installation.", cmd, cmd),
				}
			}
		}
		return types.ProjectType{
			Type:            types.ProjectTypeNode,
			SetupCommand:    npmInstallCommand,
			FollowupMessage: inspectScriptsMessage,
		}
	}

	if findBySuffix(files, indexHTMLName) != nil {
		return types.ProjectType{
			Type:         types.ProjectTypeStatic,
			SetupCommand: staticServeCommand,
		}
	}

	return types.ProjectType{}
}

// findBySuffix returns the first file whose path ends with name.
func findBySuffix(files []File, name string) File {
	for _, f := range files {
		if strings.HasSuffix(f.Path(), name) {
			return f
		}
	}
	return nil
}

// readScripts returns the scripts of a package.json file.
// Read, parse and shape errors are logged and yield no scripts.
// Values are left untyped; callers only use entries that are strings.
func readScripts(f File) map[string]any {
	rc, err := f.Open()
	if err != nil {
		log.Printf("[DETECT] Error reading %s: %v", f.Path(), err)
		return nil
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		log.Printf("[DETECT] Error reading %s: %v", f.Path(), err)
		return nil
	}

	result, err := gojsonschema.Validate(packageJSONSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		log.Printf("[DETECT] Error parsing %s: %v", f.Path(), err)
		return nil
	}
	if !result.Valid() {
		log.Printf("[DETECT] Ignoring scripts in %s: %v", f.Path(), result.Errors())
		return nil
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Printf("[DETECT] Error parsing %s: %v", f.Path(), err)
		return nil
	}
	return manifest.Scripts
}
