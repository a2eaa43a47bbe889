package cmd

import (
	"fmt"
	"strings"
	"text/template"
)

// companionTemplate is the fixed code-generation boundary for the script
// executed on the remote NMPI host. It has exactly three substitution slots:
// the temporary directory name, the per-file extraction instructions, and
// the run invocation. The runtime prologue (directory setup, extraction,
// symlink materialization, captured subprocess execution, archive-then-
// cleanup teardown) is fixed text.
const companionTemplate = `
# Automatically generated by cypress-nmpi

import base64
import bz2
import errno
import os
import shutil
import subprocess
import sys
import tarfile

# Remember which files were extracted -- we'll cleanup our traces after running
dir = os.path.realpath(os.path.join(os.getcwd(), '{{.TmpDir}}'))
files = []

def mkdir_p(path):
    try:
        if (path != ""):
            os.makedirs(path)
    except OSError as exc:
        if exc.errno == errno.EEXIST and os.path.isdir(path):
            pass
        else:
            raise

def setup():
    # List files in the current directory and link them into the target
    # directory
    for filename in os.listdir("."):
        source = os.path.realpath(os.path.join(".", filename))
        target = os.path.join(dir, filename)
        if target == dir or os.path.exists(target):
            continue
        os.symlink(source, target)

        # Important! Unlink file before recursively deleting subdirectory
        files.append(target)

def extract(filename, mode, data):
    filename = os.path.join(dir, filename)
    files.append(filename)
    mkdir_p(os.path.dirname(filename))
    with open(filename, 'wb') as fd:
        fd.write(bz2.decompress(base64.b64decode(data)))
    os.chmod(filename, mode)

def run(filename, args):
    old_cwd = os.getcwd()
    res = 1
    try:
        os.chdir(dir)
        with open(os.path.join(dir, '{{.TmpDir}}.stdout'), 'wb') as out, open(os.path.join(dir, '{{.TmpDir}}.stderr'), 'wb') as err:
            p = subprocess.Popen([os.path.join(dir, filename)] + args,
                stdout = out, stderr = err)
            p.communicate()
            res = p.returncode
    finally:
        os.chdir(old_cwd)
    return res

def cleanup():
    # Create a tar.bz2 of the target folder containing all the output
    tarname = os.path.basename(dir)
    archive = tarname + ".tar.bz2"
    with tarfile.open(archive, "w:bz2") as tar:
        tar.add(dir, arcname=tarname)

    # Remove the target directory
    shutil.rmtree(dir)

{{range .Instructions}}{{.}}
{{end}}setup()
res = run({{.RunFile}}, {{.RunArgs}})
cleanup()
sys.exit(res)
`

// companionData holds the rendered slot values for companionTemplate.
type companionData struct {
	TmpDir       string
	Instructions []string
	RunFile      string
	RunArgs      string
}

var companionTmpl = template.Must(template.New("companion").Parse(companionTemplate))

// renderCompanionScript produces the companion script text for a bundle.
// The output is a standalone artifact: it embeds every bundled file and,
// when executed remotely, extracts them, runs the executable with captured
// output, archives the results under the bundle's namespace, and exits with
// the executable's return code.
func renderCompanionScript(b *bundle) (string, error) {
	data := companionData{
		TmpDir:  b.TmpDir,
		RunFile: pyQuote(b.RunFile),
		RunArgs: pyStringList(b.RunArgs),
	}
	for _, e := range b.Entries {
		data.Instructions = append(data.Instructions, e.instruction())
	}
	var sb strings.Builder
	if err := companionTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render companion script: %w", err)
	}
	return sb.String(), nil
}
