//go:build cgo && (linux || darwin)

package refprop

/*
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

typedef void (*setpath_fn)(char*, long);
typedef void (*getenum_fn)(int*, char*, int*, int*, char*, long, long);
typedef void (*refprop_fn)(char*, char*, char*, int*, int*, int*, double*, double*, double*,
	double*, char*, int*, double*, double*, double*, double*, int*, char*,
	long, long, long, long, long);

static void rp_setpath(void *fn, char *path, long n) {
	((setpath_fn)fn)(path, n);
}

static void rp_getenum(void *fn, int *flag, char *name, int *value, int *ierr, char *herr, long nname, long nerr) {
	((getenum_fn)fn)(flag, name, value, ierr, herr, nname, nerr);
}

static void rp_refprop(void *fn, char *fld, char *in, char *out, int *units, int *mass, int *flag,
	double *a, double *b, double *z, double *output, char *hunits, int *ucode,
	double *x, double *y, double *x3, double *q, int *ierr, char *herr,
	long nfld, long nin, long nout, long nunits, long nerr) {
	((refprop_fn)fn)(fld, in, out, units, mass, flag, a, b, z, output, hunits, ucode,
		x, y, x3, q, ierr, herr, nfld, nin, nout, nunits, nerr);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/fwojciec/thermo"
)

// Fixed string and array sizes of the library's Fortran interface.
const (
	fluidLen  = 10000
	codeLen   = 255
	errLen    = 255
	pathLen   = 255
	outputLen = 200
)

type native struct {
	handle  unsafe.Pointer
	setpath unsafe.Pointer
	getenum unsafe.Pointer
	refprop unsafe.Pointer
}

func loadLibrary(path string) (library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	h := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_LOCAL)
	if h == nil {
		return nil, fmt.Errorf("load %s: %s: %w", path, C.GoString(C.dlerror()), thermo.ErrConfiguration)
	}
	lib := &native{handle: h}
	for name, dst := range map[string]*unsafe.Pointer{
		"SETPATHdll": &lib.setpath,
		"GETENUMdll": &lib.getenum,
		"REFPROPdll": &lib.refprop,
	} {
		cname := C.CString(name)
		*dst = C.dlsym(h, cname)
		C.free(unsafe.Pointer(cname))
		if *dst == nil {
			C.dlclose(h)
			return nil, fmt.Errorf("load %s: missing symbol %s: %w", path, name, thermo.ErrConfiguration)
		}
	}
	return lib, nil
}

func (l *native) setPath(dir string) error {
	buf := fortranString(dir, pathLen)
	defer C.free(buf)
	C.rp_setpath(l.setpath, (*C.char)(buf), pathLen)
	return nil
}

func (l *native) enum(name string) (int, error) {
	hname := fortranString(name, codeLen)
	defer C.free(hname)
	herr := fortranString("", errLen)
	defer C.free(herr)

	var flag, value, ierr C.int
	C.rp_getenum(l.getenum, &flag, (*C.char)(hname), &value, &ierr, (*C.char)(herr), codeLen, errLen)
	if ierr != 0 {
		return 0, fmt.Errorf("ierr=%d: %s: %w", int(ierr), goString(herr, errLen), thermo.ErrConfiguration)
	}
	return int(value), nil
}

func (l *native) call(c thermo.Call, units int) (thermo.Reply, error) {
	if len(c.Outputs) > outputLen {
		return thermo.Reply{}, errors.New("too many outputs")
	}
	hfld := fortranString(c.Fluid, fluidLen)
	defer C.free(hfld)
	hin := fortranString(c.Input, codeLen)
	defer C.free(hin)
	hout := fortranString(strings.Join(c.Outputs, ";"), codeLen)
	defer C.free(hout)
	hunits := fortranString("", codeLen)
	defer C.free(hunits)
	herr := fortranString("", errLen)
	defer C.free(herr)

	var (
		iunits = C.int(units)
		imass  C.int
		iflag  = C.int(c.Flag)
		a      = C.double(c.A)
		b      = C.double(c.B)
		z      [thermo.MaxComponents]C.double
		output [outputLen]C.double
		x, y   [thermo.MaxComponents]C.double
		x3     [thermo.MaxComponents]C.double
		q      C.double
		ucode  C.int
		ierr   C.int
	)
	for i, f := range c.Fractions {
		z[i] = C.double(f)
	}
	C.rp_refprop(l.refprop, (*C.char)(hfld), (*C.char)(hin), (*C.char)(hout),
		&iunits, &imass, &iflag, &a, &b, &z[0], &output[0], (*C.char)(hunits), &ucode,
		&x[0], &y[0], &x3[0], &q, &ierr, (*C.char)(herr),
		fluidLen, codeLen, codeLen, codeLen, errLen)

	reply := thermo.Reply{
		Output:  make([]float64, len(c.Outputs)),
		Text:    goString(hunits, codeLen),
		Code:    int(ierr),
		Message: goString(herr, errLen),
	}
	for i := range reply.Output {
		reply.Output[i] = float64(output[i])
	}
	return reply, nil
}

func (l *native) close() error {
	if C.dlclose(l.handle) != 0 {
		return fmt.Errorf("unload: %s", C.GoString(C.dlerror()))
	}
	return nil
}

// fortranString allocates a C buffer of n bytes holding s padded with
// blanks. The caller frees it.
func fortranString(s string, n int) unsafe.Pointer {
	buf := []byte(strings.Repeat(" ", n))
	copy(buf, s)
	return C.CBytes(buf)
}

// goString reads a blank- or NUL-padded Fortran string.
func goString(p unsafe.Pointer, n int) string {
	s := C.GoBytes(p, C.int(n))
	if i := strings.IndexByte(string(s), 0); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(string(s))
}
