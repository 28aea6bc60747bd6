package imports

import (
	"os"
	"path/filepath"
	"strings"

	"codehunter/internal/findings"
)

// Origin is where an imported module comes from.
type Origin string

const (
	OriginStdlib     Origin = "stdlib"
	OriginInternal   Origin = "internal"
	OriginThirdParty Origin = "third_party"
)

// Classifier decides the origin of imported modules relative to a project
// root.
type Classifier struct {
	root  string
	cache map[string]Origin
}

// NewClassifier returns a classifier for the project at root.
func NewClassifier(root string) *Classifier {
	return &Classifier{root: root, cache: make(map[string]Origin)}
}

// Classify returns the origin of a dotted module path. Relative modules are
// always internal.
func (c *Classifier) Classify(module string) Origin {
	if strings.HasPrefix(module, ".") {
		return OriginInternal
	}
	top := module
	if i := strings.IndexByte(top, '.'); i >= 0 {
		top = top[:i]
	}
	if top == "" {
		return OriginThirdParty
	}
	if o, ok := c.cache[top]; ok {
		return o
	}

	o := OriginThirdParty
	switch {
	case stdlibModules[top]:
		o = OriginStdlib
	case c.existsInRoot(top):
		o = OriginInternal
	}
	c.cache[top] = o
	return o
}

func (c *Classifier) existsInRoot(top string) bool {
	if c.root == "" {
		return false
	}
	if _, err := os.Stat(filepath.Join(c.root, top+".py")); err == nil {
		return true
	}
	info, err := os.Stat(filepath.Join(c.root, top))
	return err == nil && info.IsDir()
}

// UnusedSeverity returns the severity reported for an unused import of the
// given origin. Unused standard library imports are cheap; anything else
// may pull in side effects or dependencies.
func UnusedSeverity(o Origin) findings.Severity {
	if o == OriginStdlib {
		return findings.Info
	}
	return findings.Warning
}

// stdlibModules lists top-level modules shipped with CPython 3.
var stdlibModules = func() map[string]bool {
	names := strings.Fields(`
__future__ _thread abc aifc argparse array ast asynchat asyncio asyncore
atexit audioop base64 bdb binascii bisect builtins bz2 calendar cgi cgitb
chunk cmath cmd code codecs codeop collections colorsys compileall
concurrent configparser contextlib contextvars copy copyreg cProfile crypt
csv ctypes curses dataclasses datetime dbm decimal difflib dis doctest
email encodings ensurepip enum errno faulthandler fcntl filecmp fileinput
fnmatch fractions ftplib functools gc getopt getpass gettext glob graphlib
grp gzip hashlib heapq hmac html http idlelib imaplib imghdr imp importlib
inspect io ipaddress itertools json keyword lib2to3 linecache locale
logging lzma mailbox mailcap marshal math mimetypes mmap modulefinder
msilib msvcrt multiprocessing netrc nis nntplib ntpath numbers operator
optparse os ossaudiodev pathlib pdb pickle pickletools pipes pkgutil
platform plistlib poplib posix posixpath pprint profile pstats pty pwd
py_compile pyclbr pydoc queue quopri random re readline reprlib resource
rlcompleter runpy sched secrets select selectors shelve shlex shutil signal
site smtpd smtplib sndhdr socket socketserver spwd sqlite3 sre_compile
sre_constants sre_parse ssl stat statistics string stringprep struct
subprocess sunau symtable sys sysconfig syslog tabnanny tarfile telnetlib
tempfile termios textwrap threading time timeit tkinter token tokenize
tomllib trace traceback tracemalloc tty turtle turtledemo types typing
unicodedata unittest urllib uu uuid venv warnings wave weakref webbrowser
winreg winsound wsgiref xdrlib xml xmlrpc zipapp zipfile zipimport zlib
zoneinfo`)
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}()
