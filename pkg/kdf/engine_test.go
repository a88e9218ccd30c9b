package kdf

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/saylorsolutions/sphragis/pkg/secure"
	"github.com/saylorsolutions/sphragis/pkg/secure/securetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

var (
	testSecret = []byte("correct horse battery staple")
	testSalt   = make([]byte, 16)
	testParams = Params{MemoryCost: 64, TimeCost: 2, Parallelism: 1}
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(UseAllocator(secure.Heap))
	require.NoError(t, err)
	return e
}

func derive(t *testing.T, e *Engine, secret, salt []byte, version Version, params Params) []byte {
	t.Helper()
	key, err := e.Derive(secret, salt, version, params)
	require.NoError(t, err)
	defer key.Destroy()
	require.Equal(t, KeySize, key.Len())
	return bytes.Clone(key.Bytes())
}

func TestEngine_MatchesReference(t *testing.T) {
	tests := map[string]struct {
		secret []byte
		salt   []byte
		params Params
	}{
		"Single lane": {
			secret: testSecret,
			salt:   testSalt,
			params: Params{MemoryCost: 64, TimeCost: 1, Parallelism: 1},
		},
		"Multiple passes": {
			secret: testSecret,
			salt:   []byte("somesalt"),
			params: Params{MemoryCost: 256, TimeCost: 3, Parallelism: 1},
		},
		"Multiple lanes": {
			secret: []byte("password"),
			salt:   []byte("a longer salt value"),
			params: Params{MemoryCost: 128, TimeCost: 2, Parallelism: 4},
		},
		"Memory rounded down to lane multiple": {
			secret: []byte("password"),
			salt:   []byte("somesalt"),
			params: Params{MemoryCost: 103, TimeCost: 2, Parallelism: 3},
		},
		"Empty secret": {
			secret: []byte{},
			salt:   testSalt,
			params: Params{MemoryCost: 32, TimeCost: 1, Parallelism: 1},
		},
		"More than one address block per segment": {
			secret: testSecret,
			salt:   testSalt,
			params: Params{MemoryCost: 1024, TimeCost: 1, Parallelism: 1},
		},
	}

	e := newTestEngine(t)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			expected := argon2.IDKey(tc.secret, tc.salt, tc.params.TimeCost, tc.params.MemoryCost, uint8(tc.params.Parallelism), KeySize)
			got := derive(t, e, tc.secret, tc.salt, Version13, tc.params)
			assert.Equal(t, expected, got)
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	for _, v := range []Version{Version10, Version13} {
		a := derive(t, e, testSecret, testSalt, v, testParams)
		b := derive(t, e, testSecret, testSalt, v, testParams)
		assert.Equal(t, a, b, "version %s should be deterministic", v)
	}
}

func TestEngine_Sensitivity(t *testing.T) {
	e := newTestEngine(t)
	base := derive(t, e, testSecret, testSalt, Version13, testParams)

	variants := map[string][]byte{
		"secret":  derive(t, e, []byte("correct horse battery stapler"), testSalt, Version13, testParams),
		"salt":    derive(t, e, testSecret, append(make([]byte, 15), 1), Version13, testParams),
		"version": derive(t, e, testSecret, testSalt, Version10, testParams),
		"m_cost":  derive(t, e, testSecret, testSalt, Version13, Params{MemoryCost: 72, TimeCost: 2, Parallelism: 1}),
		"t_cost":  derive(t, e, testSecret, testSalt, Version13, Params{MemoryCost: 64, TimeCost: 3, Parallelism: 1}),
		"p_cost":  derive(t, e, testSecret, testSalt, Version13, Params{MemoryCost: 64, TimeCost: 2, Parallelism: 2}),
	}
	for name, key := range variants {
		assert.NotEqual(t, base, key, "changing %s should change the key", name)
	}
}

func TestEngine_VersionsDifferOnSinglePass(t *testing.T) {
	e := newTestEngine(t)
	params := Params{MemoryCost: 64, TimeCost: 1, Parallelism: 1}
	v10 := derive(t, e, []byte("correct horse battery staple"), testSalt, Version10, params)
	v13 := derive(t, e, []byte("correct horse battery staple"), testSalt, Version13, params)
	assert.NotEqual(t, v10, v13, "the version is part of the initial hash")
	assert.Equal(t, "2436180e5f8ec13b368a850b008237726eb726a5f5e9cab1e1e3336033168172", hex.EncodeToString(v10))
	assert.Equal(t, "46dcf439cf133cf451d625ecf20345c1c3d9b769e40873b60b313d1e15fbef7f", hex.EncodeToString(v13))
}

func TestEngine_KnownAnswers(t *testing.T) {
	tests := map[string]struct {
		secret   string
		salt     []byte
		version  Version
		params   Params
		expected string
	}{
		"Version 0x13 passphrase fixture": {
			secret:   "correct horse battery staple",
			salt:     make([]byte, 16),
			version:  Version13,
			params:   Params{MemoryCost: 19456, TimeCost: 2, Parallelism: 1},
			expected: "bcaf6fd0e5aaa31b272240c38067653313e9f7802fc226ccf8416cf7bcf9e644",
		},
		"Version 0x13 multiple lanes": {
			secret:   "correct horse battery staple",
			salt:     make([]byte, 16),
			version:  Version13,
			params:   Params{MemoryCost: 1024, TimeCost: 3, Parallelism: 2},
			expected: "1c3d4a94af34098ac256e240eea1371ebbe36dc04947916804de6cc4067ed740",
		},
		"Version 0x10": {
			secret:   "password",
			salt:     []byte("somesalt"),
			version:  Version10,
			params:   Params{MemoryCost: 256, TimeCost: 2, Parallelism: 1},
			expected: "da070e576e50f2f38a3c897cbddc6c7fb4028e870971ff9eae7b4e1879295e6e",
		},
		"Version 0x10 multiple lanes": {
			secret:   "correct horse battery staple",
			salt:     make([]byte, 16),
			version:  Version10,
			params:   Params{MemoryCost: 1024, TimeCost: 3, Parallelism: 2},
			expected: "e850a2968b9fbbd544b016e24894d15a076e58f359d260f62658d04b494a8ace",
		},
		"Version 0x10 several address blocks per segment": {
			secret:   "correct horse battery staple",
			salt:     make([]byte, 16),
			version:  Version10,
			params:   Params{MemoryCost: 2048, TimeCost: 2, Parallelism: 2},
			expected: "965c8be4273e6c4cb499aee287b823861078a3368abbb4dece6c5e4dcb0185db",
		},
	}

	e := newTestEngine(t)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			key := derive(t, e, []byte(tc.secret), tc.salt, tc.version, tc.params)
			assert.Equal(t, tc.expected, hex.EncodeToString(key))
		})
	}
}

func TestEngine_Neg(t *testing.T) {
	e := newTestEngine(t)

	tests := map[string]struct {
		salt    []byte
		version Version
		params  Params
		err     error
	}{
		"Short salt": {
			salt:    make([]byte, MinSaltLen-1),
			version: Version13,
			params:  testParams,
			err:     ErrSaltTooShort,
		},
		"Unknown version": {
			salt:    testSalt,
			version: Version(0x99),
			params:  testParams,
			err:     ErrUnsupportedVersion,
		},
		"Invalid params": {
			salt:    testSalt,
			version: Version13,
			params:  Params{MemoryCost: 0, TimeCost: 1, Parallelism: 1},
			err:     ErrMemoryTooLittle,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			key, err := e.Derive(testSecret, tc.salt, tc.version, tc.params)
			assert.Nil(t, key)
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, IsDerivationError(err))
		})
	}

	var nilEngine *Engine
	_, err := nilEngine.Derive(testSecret, testSalt, Version13, testParams)
	assert.ErrorIs(t, err, ErrNilEngine)
}

func TestEngine_DoesNotModifyInputs(t *testing.T) {
	e := newTestEngine(t)
	secret := bytes.Clone(testSecret)
	salt := bytes.Clone(testSalt)
	derive(t, e, secret, salt, Version13, testParams)
	assert.Equal(t, testSecret, secret)
	assert.Equal(t, testSalt, salt)
}

func TestEngine_KeyOwnership(t *testing.T) {
	var rec securetest.Recorder
	e, err := NewEngine(UseAllocator(&rec))
	require.NoError(t, err)

	key, err := e.Derive(testSecret, testSalt, Version13, testParams)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Live())
	key.Destroy()
	rec.AssertWiped(t)

	_, err = e.Derive(testSecret, []byte("short"), Version13, testParams)
	assert.Error(t, err)
	assert.Equal(t, 1, rec.Count(), "no key should be allocated for invalid input")
}

func TestNewEngine_Neg(t *testing.T) {
	_, err := NewEngine(UseAllocator(nil))
	assert.Error(t, err)
}
